package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jpvales/homerate-api/internal/cache"
	"github.com/jpvales/homerate-api/internal/entity"
)

const offersCacheKey = "offers:active"

// ListOffersUseCase serves the marketplace listing through an injected cache
// so the read-heavy comparison page does not hit Postgres on every render.
type ListOffersUseCase struct {
	Repo  entity.OfferRepositoryInterface
	Cache cache.Cache
	TTL   time.Duration
}

func NewListOffersUseCase(repo entity.OfferRepositoryInterface, c cache.Cache, ttl time.Duration) *ListOffersUseCase {
	return &ListOffersUseCase{Repo: repo, Cache: c, TTL: ttl}
}

func (uc *ListOffersUseCase) Execute(ctx context.Context) ([]entity.Offer, error) {
	if cached, ok := uc.Cache.Get(offersCacheKey); ok {
		if offers, ok := cached.([]entity.Offer); ok {
			return offers, nil
		}
	}

	offers, err := uc.Repo.ListActive(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceError,
			Message: "failed to list offers: " + err.Error(),
		}
	}

	uc.Cache.Set(offersCacheKey, offers, uc.TTL)
	return offers, nil
}

// RecordOfferClickUseCase writes one click row per outbound visit to a
// lender, used for conversion reporting.
type RecordOfferClickUseCase struct {
	Offers entity.OfferRepositoryInterface
	Clicks entity.OfferClickRepositoryInterface
}

func NewRecordOfferClickUseCase(
	offers entity.OfferRepositoryInterface,
	clicks entity.OfferClickRepositoryInterface,
) *RecordOfferClickUseCase {
	return &RecordOfferClickUseCase{Offers: offers, Clicks: clicks}
}

func (uc *RecordOfferClickUseCase) Execute(ctx context.Context, offerID, ip, referer string) (*entity.OfferClick, error) {
	if offerID == "" {
		return nil, &DomainError{Code: CodeInvalidInput, Message: "offer id is required"}
	}

	offer, err := uc.Offers.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, entity.ErrOfferNotFound) {
			return nil, &DomainError{Code: CodeRecordNotFound, Message: "offer not found"}
		}
		return nil, &TechnicalError{
			Code:    CodePersistenceError,
			Message: "failed to load offer: " + err.Error(),
		}
	}

	click := &entity.OfferClick{
		ID:        uuid.New().String(),
		OfferID:   offer.ID,
		IPAddress: ip,
		Referer:   referer,
		ClickedAt: time.Now().UTC(),
	}

	if err := uc.Clicks.Insert(ctx, click); err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceError,
			Message: "failed to record click: " + err.Error(),
		}
	}

	return click, nil
}
