package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jpvales/homerate-api/internal/entity"
)

type OfferClickRepository struct {
	DB *sql.DB
}

func NewOfferClickRepository(db *sql.DB) *OfferClickRepository {
	return &OfferClickRepository{DB: db}
}

func (r *OfferClickRepository) Insert(ctx context.Context, click *entity.OfferClick) error {
	query := `
		INSERT INTO offer_clicks (id, offer_id, ip_address, referer, clicked_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		click.ID,
		click.OfferID,
		nullString(click.IPAddress),
		nullString(click.Referer),
		click.ClickedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record offer click: %w", err)
	}

	return nil
}
