package entity

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type LeadSource string

const (
	SourceDealAnalyzer LeadSource = "DEAL_ANALYZER"
	SourceHELOC        LeadSource = "HELOC"
)

type DealResult string

const (
	ResultGreat DealResult = "GREAT"
	ResultFair  DealResult = "FAIR"
	ResultPoor  DealResult = "POOR"
)

var ErrLeadNotFound = errors.New("analyzer lead not found")

// AnalyzerLead is one Deal Analyzer (or HELOC) submission. All fields except
// Email are fixed at creation; Email may be attached once via the follow-up
// flow.
type AnalyzerLead struct {
	ID             string          `json:"id"`
	Source         LeadSource      `json:"source"`
	Email          string          `json:"email,omitempty"`
	IPAddress      string          `json:"ip_address,omitempty"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	LoanTerm       int             `json:"loan_term"`
	LoanStartMonth int             `json:"loan_start_month"`
	LoanStartYear  int             `json:"loan_start_year"`
	ResultType     DealResult      `json:"result_type"`
	SubmittedAt    time.Time       `json:"submitted_at"`
}

type AnalyzerLeadRepositoryInterface interface {
	// InsertWithinLimit persists the lead only if the trailing-window count
	// for its IP is below max. Returns false (and no error) when the limit
	// blocked the insert. Leads without an IP are inserted unconditionally.
	InsertWithinLimit(ctx context.Context, lead *AnalyzerLead, window time.Duration, max int) (bool, error)

	CountRecentByIP(ctx context.Context, ip string, window time.Duration) (int, error)

	// FindByID returns ErrLeadNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*AnalyzerLead, error)

	// SetEmailIfUnset attaches the email only when the column is still NULL.
	// Returns false when the row already carries an email.
	SetEmailIfUnset(ctx context.Context, id, email string) (bool, error)
}
