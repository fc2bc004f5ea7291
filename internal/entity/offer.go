package entity

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrOfferNotFound = errors.New("offer not found")

// Offer is one marketplace listing shown on the comparison page.
type Offer struct {
	ID          string          `json:"id"`
	Lender      string          `json:"lender"`
	ProductType string          `json:"product_type"` // FIXED_15, FIXED_30, HELOC
	MinAPR      decimal.Decimal `json:"min_apr"`
	MaxAPR      decimal.Decimal `json:"max_apr"`
	TermYears   int             `json:"term_years"`
	URL         string          `json:"url"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OfferClick is one outbound click on a marketplace offer.
type OfferClick struct {
	ID        string    `json:"id"`
	OfferID   string    `json:"offer_id"`
	IPAddress string    `json:"ip_address,omitempty"`
	Referer   string    `json:"referer,omitempty"`
	ClickedAt time.Time `json:"clicked_at"`
}

type OfferRepositoryInterface interface {
	ListActive(ctx context.Context) ([]Offer, error)

	// FindByID returns ErrOfferNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*Offer, error)
}

type OfferClickRepositoryInterface interface {
	Insert(ctx context.Context, click *OfferClick) error
}
