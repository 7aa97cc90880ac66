//go:build (dev_test || staging_test) && integration

package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/config"
	internal_repositories "github.com/tk20211228/deal-flow-sample-sqlite/internal/repositories"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
	_ "time/tzdata"
)

// Global test-level variables
var (
	db       *pgxpool.Pool
	dealRepo internal_repositories.DealRepository
)

// TestMain connects once, applies the schema and shares the repository
// across every integration test in this package.
func TestMain(m *testing.M) {
	utils.InitLogger(config.AppName)

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL is empty or not set")
	}
	if schema := os.Getenv("DB_SCHEMA"); schema != "" {
		var err error
		if dbURL, err = utils.WithSearchPath(dbURL, schema); err != nil {
			log.Fatalf("invalid DB_SCHEMA: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	db, err = pgxpool.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	ddl, err := os.ReadFile("../../migrations/0001_create_deals.sql")
	if err != nil {
		log.Fatalf("failed to read migration: %v", err)
	}
	if _, err := db.Exec(ctx, string(ddl)); err != nil {
		log.Fatalf("failed to apply migration: %v", err)
	}

	dealRepo = internal_repositories.NewDealRepository(db)
	log.Printf("deal-flow integration tests: DB connected, env=%s", os.Getenv("ENV"))

	code := m.Run()
	db.Close()
	os.Exit(code)
}
