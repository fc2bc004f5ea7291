package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jpvales/homerate-api/internal/entity"
	"github.com/jpvales/homerate-api/internal/infra/queue"
)

// MockAnalyzerLeadRepository
type MockAnalyzerLeadRepository struct {
	mock.Mock
}

func (m *MockAnalyzerLeadRepository) InsertWithinLimit(ctx context.Context, lead *entity.AnalyzerLead, window time.Duration, max int) (bool, error) {
	args := m.Called(ctx, lead, window, max)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnalyzerLeadRepository) CountRecentByIP(ctx context.Context, ip string, window time.Duration) (int, error) {
	args := m.Called(ctx, ip, window)
	return args.Int(0), args.Error(1)
}

func (m *MockAnalyzerLeadRepository) FindByID(ctx context.Context, id string) (*entity.AnalyzerLead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AnalyzerLead), args.Error(1)
}

func (m *MockAnalyzerLeadRepository) SetEmailIfUnset(ctx context.Context, id, email string) (bool, error) {
	args := m.Called(ctx, id, email)
	return args.Bool(0), args.Error(1)
}

// MockHistoricalRateProvider
type MockHistoricalRateProvider struct {
	mock.Mock
}

func (m *MockHistoricalRateProvider) AverageRate(ctx context.Context, termYears, month, year int) (decimal.Decimal, error) {
	args := m.Called(ctx, termYears, month, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockNotificationProducer
type MockNotificationProducer struct {
	mock.Mock
}

func (m *MockNotificationProducer) PublishLeadNotification(ctx context.Context, payload queue.LeadNotificationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockOfferRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) ListActive(ctx context.Context) ([]entity.Offer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindByID(ctx context.Context, id string) (*entity.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Offer), args.Error(1)
}

// MockOfferClickRepository
type MockOfferClickRepository struct {
	mock.Mock
}

func (m *MockOfferClickRepository) Insert(ctx context.Context, click *entity.OfferClick) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}
