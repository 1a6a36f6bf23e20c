package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lease-pricing-api/internal/model"
)

type ListingRepo struct {
	db *pgxpool.Pool
}

func NewListingRepo(db *pgxpool.Pool) *ListingRepo {
	return &ListingRepo{db: db}
}

// GetByID returns one listing with its full lease offer list.
func (r *ListingRepo) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	var l model.Listing
	err := r.db.QueryRow(ctx, `
		SELECT id, COALESCE(legacy_id, ''), make, model,
		       COALESCE(variant, ''), COALESCE(body_type, ''),
		       retail_price, monthly_price
		FROM listings
		WHERE id = $1 OR legacy_id = $1
	`, id).Scan(
		&l.ID, &l.LegacyID, &l.Make, &l.Model,
		&l.Variant, &l.BodyType,
		&l.RetailPrice, &l.MonthlyPrice,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT mileage_per_year, period_months, first_payment, monthly_price, total_cost
		FROM lease_pricing
		WHERE listing_id = $1
		ORDER BY mileage_per_year, period_months, first_payment
	`, l.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var o model.LeaseOption
		if err := rows.Scan(&o.MileagePerYear, &o.PeriodMonths, &o.FirstPayment, &o.MonthlyPrice, &o.TotalCost); err != nil {
			return nil, err
		}
		l.LeasePricing = append(l.LeasePricing, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &l, nil
}

// Search returns listings matching the filters, most affordable first.
// Offer lists are not loaded; the similar-listings matcher needs only the
// identity fields and the display price.
func (r *ListingRepo) Search(ctx context.Context, filters model.ListingFilters, limit int) ([]model.Listing, error) {
	query := `
		SELECT id, COALESCE(legacy_id, ''), make, model,
		       COALESCE(variant, ''), COALESCE(body_type, ''),
		       retail_price, monthly_price
		FROM listings
		WHERE 1=1
	`
	args := []any{}
	n := 0

	if filters.Make != "" {
		n++
		query += fmt.Sprintf(" AND LOWER(make) = LOWER($%d)", n)
		args = append(args, filters.Make)
	}
	if filters.MonthlyPriceMin > 0 {
		n++
		query += fmt.Sprintf(" AND monthly_price >= $%d", n)
		args = append(args, filters.MonthlyPriceMin)
	}
	if filters.MonthlyPriceMax > 0 {
		n++
		query += fmt.Sprintf(" AND monthly_price <= $%d", n)
		args = append(args, filters.MonthlyPriceMax)
	}
	if filters.ExcludeID != "" {
		n++
		query += fmt.Sprintf(" AND id <> $%d AND COALESCE(legacy_id, '') <> $%d", n, n)
		args = append(args, filters.ExcludeID)
	}

	n++
	query += fmt.Sprintf(" ORDER BY monthly_price LIMIT $%d", n)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		var l model.Listing
		if err := rows.Scan(
			&l.ID, &l.LegacyID, &l.Make, &l.Model,
			&l.Variant, &l.BodyType,
			&l.RetailPrice, &l.MonthlyPrice,
		); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}
