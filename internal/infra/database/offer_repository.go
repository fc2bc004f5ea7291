package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jpvales/homerate-api/internal/entity"
)

type OfferRepository struct {
	DB *sql.DB
}

func NewOfferRepository(db *sql.DB) *OfferRepository {
	return &OfferRepository{DB: db}
}

func (r *OfferRepository) ListActive(ctx context.Context) ([]entity.Offer, error) {
	query := `
		SELECT id, lender, product_type, min_apr, max_apr, term_years, url, active, created_at
		FROM offers
		WHERE active
		ORDER BY min_apr ASC, lender ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []entity.Offer
	for rows.Next() {
		var offer entity.Offer
		if err := rows.Scan(
			&offer.ID,
			&offer.Lender,
			&offer.ProductType,
			&offer.MinAPR,
			&offer.MaxAPR,
			&offer.TermYears,
			&offer.URL,
			&offer.Active,
			&offer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, offer)
	}

	return offers, rows.Err()
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*entity.Offer, error) {
	query := `
		SELECT id, lender, product_type, min_apr, max_apr, term_years, url, active, created_at
		FROM offers
		WHERE id = $1
	`

	var offer entity.Offer
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&offer.ID,
		&offer.Lender,
		&offer.ProductType,
		&offer.MinAPR,
		&offer.MaxAPR,
		&offer.TermYears,
		&offer.URL,
		&offer.Active,
		&offer.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	return &offer, nil
}
