package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// PRODUCTION BATCHES
	// -------------------------------
	batchTableSQL := `
		CREATE TABLE IF NOT EXISTS production_batches (
			id UUID PRIMARY KEY,
			sub_recipe_id VARCHAR(255) NOT NULL,
			quantity_produced_ml DOUBLE PRECISION NOT NULL DEFAULT 0,
			produced_by_user_id VARCHAR(255) NOT NULL DEFAULT '',
			produced_by_name VARCHAR(255) NOT NULL DEFAULT '',
			production_date TIMESTAMPTZ NOT NULL,
			expiration_date TIMESTAMPTZ NULL,
			notes TEXT NOT NULL DEFAULT '',
			group_id UUID NOT NULL
		)
	`
	if _, err := db.Exec(ctx, batchTableSQL); err != nil {
		return err
	}

	batchIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_production_batches_sub_recipe
		ON production_batches (sub_recipe_id);

		CREATE INDEX IF NOT EXISTS idx_production_batches_group
		ON production_batches (group_id)
	`
	if _, err := db.Exec(ctx, batchIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// LOSS ENTRIES
	// -------------------------------
	lossTableSQL := `
		CREATE TABLE IF NOT EXISTS loss_entries (
			id UUID PRIMARY KEY,
			group_id UUID NOT NULL,
			ingredient_name VARCHAR(255) NOT NULL,
			loss_amount_ml DOUBLE PRECISION NOT NULL DEFAULT 0,
			loss_reason VARCHAR(100) NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			recorded_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := db.Exec(ctx, lossTableSQL); err != nil {
		return err
	}

	lossIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_loss_entries_group
		ON loss_entries (group_id)
	`
	if _, err := db.Exec(ctx, lossIndexSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
