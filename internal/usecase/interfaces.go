package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jpvales/homerate-api/internal/entity"
	"github.com/jpvales/homerate-api/internal/infra/queue"
)

type SubmitAnalyzerLeadInput struct {
	Source         string          `json:"source"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	LoanTerm       int             `json:"loan_term"`
	LoanStartMonth int             `json:"loan_start_month"`
	LoanStartYear  int             `json:"loan_start_year"`

	// IPAddress is filled by the HTTP layer, never by the client payload.
	IPAddress string `json:"-"`
}

type SubmitAnalyzerLeadOutput struct {
	ID             string            `json:"id"`
	ResultType     entity.DealResult `json:"result_type"`
	HistoricalRate decimal.Decimal   `json:"historical_rate"`
}

type AttachFollowupEmailInput struct {
	RecordID string `json:"-"`
	Email    string `json:"email"`
}

type AttachFollowupEmailOutput struct {
	OK bool `json:"ok"`

	// Notified is false when the email was attached but the notification
	// dispatch failed. The update is never rolled back for that.
	Notified bool `json:"notified"`
}

// HistoricalRateProvider returns the published average mortgage rate for the
// given term within the first weeks of (month, year).
type HistoricalRateProvider interface {
	AverageRate(ctx context.Context, termYears, month, year int) (decimal.Decimal, error)
}

type NotificationProducerInterface interface {
	PublishLeadNotification(ctx context.Context, payload queue.LeadNotificationPayload) error
}
