package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations executes all database migrations
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// Check if table exists
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = 'listings'
		)
	`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if listings table exists: %w", err)
	}

	if exists {
		return nil
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			legacy_id TEXT,
			make TEXT NOT NULL,
			model TEXT NOT NULL,
			variant TEXT,
			body_type TEXT,
			retail_price NUMERIC(12,2) NOT NULL,
			monthly_price NUMERIC(10,2) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create listings table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS lease_pricing (
			id SERIAL PRIMARY KEY,
			listing_id TEXT NOT NULL,
			mileage_per_year INTEGER,
			period_months INTEGER,
			first_payment NUMERIC(10,2),
			monthly_price NUMERIC(10,2) NOT NULL,
			total_cost NUMERIC(12,2),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT fk_lease_pricing_listing
				FOREIGN KEY (listing_id)
				REFERENCES listings(id)
				ON DELETE CASCADE,
			CONSTRAINT uq_lease_pricing_cell
				UNIQUE (listing_id, mileage_per_year, period_months, first_payment)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create lease_pricing table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_lease_pricing_listing
		ON lease_pricing(listing_id)
	`)
	if err != nil {
		return fmt.Errorf("failed to create idx_lease_pricing_listing: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_listings_make
		ON listings(LOWER(make))
	`)
	if err != nil {
		return fmt.Errorf("failed to create idx_listings_make: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_listings_monthly_price
		ON listings(monthly_price)
	`)
	if err != nil {
		return fmt.Errorf("failed to create idx_listings_monthly_price: %w", err)
	}

	return nil
}
