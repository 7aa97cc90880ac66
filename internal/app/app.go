package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/config"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
}

func NewApp(cfg *config.Config) (*App, error) {
	effectiveURL := cfg.DBUrl
	if cfg.LDFlag_UsingIsolatedSchema {
		var err error
		effectiveURL, err = utils.WithSearchPath(cfg.DBUrl, cfg.DBSchema)
		if err != nil {
			return nil, err
		}
		utils.Logger.Infof("Using isolated schema for %s; search_path=%s", cfg.AppName, cfg.DBSchema)
	} else {
		utils.Logger.Infof("Isolated schema disabled; using the default search_path for %s.", cfg.AppName)
	}

	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, effectiveURL)
		cancel()
		if err == nil {
			utils.Logger.WithField("attempt", i).Infof("%s connected to DB", cfg.AppName)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	if err := checkSchema(context.Background(), dbPool); err != nil {
		dbPool.Close()
		return nil, err
	}

	return &App{Config: cfg, DB: dbPool}, nil
}

// checkSchema fails fast when the deals migration has not been applied to the
// schema on the search_path.
func checkSchema(ctx context.Context, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var table *string
	if err := db.QueryRow(ctx, `SELECT to_regclass('deals')::text`).Scan(&table); err != nil {
		return fmt.Errorf("check deals table: %w", err)
	}
	if table == nil {
		return fmt.Errorf("deals table not found; apply migrations/0001_create_deals.sql first")
	}
	return nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Infof("%s DB connection closed.", a.Config.AppName)
	}
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}
