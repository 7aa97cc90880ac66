package config

import (
	"crypto/rsa"
	"encoding/base64"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/middleware"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
)

type Config struct {
	OrganizationName               string
	AppName                        string
	Env                            string
	AppPort                        string
	AppUrl                         string
	DBUrl                          string
	DBSchema                       string
	RSAPublicKey                   *rsa.PublicKey
	TokenIssuer                    string
	LDFlag_UsingIsolatedSchema     bool
	LDFlag_CORSHighSecurity        bool
	LDFlag_SeedDbWithTestData      bool
	LDFlag_SettlementExposureCheck bool
}

// envConfig is the runtime environment. Flag defaults apply when no
// LaunchDarkly key is configured.
type envConfig struct {
	Env                     string `env:"ENV,required"`
	AppPort                 string `env:"APP_PORT,required"`
	AppUrl                  string `env:"APP_URL_FROM_ANYWHERE,required"`
	DBUrl                   string `env:"DB_URL,required"`
	DBSchema                string `env:"DB_SCHEMA" envDefault:"deal_flow_dev"`
	RSAPublicKeyBase64      string `env:"RSA_PUBLIC_KEY_BASE64,required"`
	TokenIssuer             string `env:"AUTH_TOKEN_ISSUER"`
	LDSDKKey                string `env:"LD_SDK_KEY"`
	UsingIsolatedSchema     bool   `env:"USING_ISOLATED_SCHEMA" envDefault:"false"`
	CORSHighSecurity        bool   `env:"CORS_HIGH_SECURITY" envDefault:"true"`
	SeedDbWithTestData      bool   `env:"SEED_DB_WITH_TEST_DATA" envDefault:"false"`
	SettlementExposureCheck bool   `env:"SETTLEMENT_EXPOSURE_CHECK" envDefault:"true"`
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second
)

var (
	AppName             string
	LDServerContextKey  string
	LDServerContextKind string
)

func LoadConfig() *Config {
	if AppName == "" {
		utils.Logger.Fatal("AppName ldflag missing")
	}
	utils.Logger.Info("Loading config for app: ", AppName)

	var e envConfig
	if err := env.Parse(&e); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse environment")
	}

	pubPEM, err := base64.StdEncoding.DecodeString(e.RSAPublicKeyBase64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	issuer := e.TokenIssuer
	if issuer == "" {
		issuer = middleware.TokenIssuer
	}

	cfg := &Config{
		OrganizationName:               OrganizationName,
		AppName:                        AppName,
		Env:                            e.Env,
		AppPort:                        e.AppPort,
		AppUrl:                         e.AppUrl,
		DBUrl:                          e.DBUrl,
		DBSchema:                       e.DBSchema,
		RSAPublicKey:                   pubKey,
		TokenIssuer:                    issuer,
		LDFlag_UsingIsolatedSchema:     e.UsingIsolatedSchema,
		LDFlag_CORSHighSecurity:        e.CORSHighSecurity,
		LDFlag_SeedDbWithTestData:      e.SeedDbWithTestData,
		LDFlag_SettlementExposureCheck: e.SettlementExposureCheck,
	}

	if e.LDSDKKey == "" {
		utils.Logger.Warn("LD_SDK_KEY not set; using feature flag defaults from the environment")
		return cfg
	}
	loadFlags(cfg, e.LDSDKKey)
	return cfg
}

func loadFlags(cfg *Config, sdkKey string) {
	if LDServerContextKey == "" || LDServerContextKind == "" {
		utils.Logger.Fatal("LD context ldflags missing")
	}

	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	boolFlag := func(key string, fallback bool) bool {
		v, err := ldClient.BoolVariation(key, ctx, fallback)
		if err != nil {
			utils.Logger.WithError(err).Fatalf("Error retrieving %s flag", key)
		}
		utils.Logger.Debugf("%s flag: %t", key, v)
		return v
	}

	cfg.LDFlag_UsingIsolatedSchema = boolFlag("using_isolated_schema", cfg.LDFlag_UsingIsolatedSchema)
	cfg.LDFlag_CORSHighSecurity = boolFlag("cors_high_security", cfg.LDFlag_CORSHighSecurity)
	cfg.LDFlag_SeedDbWithTestData = boolFlag("seed_db_with_test_data", cfg.LDFlag_SeedDbWithTestData)
	cfg.LDFlag_SettlementExposureCheck = boolFlag("settlement_exposure_check", cfg.LDFlag_SettlementExposureCheck)
}

func (c *Config) Close() {}
