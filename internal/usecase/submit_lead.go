package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jpvales/homerate-api/internal/entity"
)

const (
	rateLimitWindow = 60 * time.Minute
	rateLimitMax    = 3
)

// SubmitAnalyzerLeadUseCase runs the Deal Analyzer pipeline: validate,
// rate-limit, fetch the historical benchmark, classify, persist. Any step
// aborts the whole submission; a row only ever exists for a fully graded
// lead.
type SubmitAnalyzerLeadUseCase struct {
	Repo  entity.AnalyzerLeadRepositoryInterface
	Rates HistoricalRateProvider

	// AllowAnonymous preserves the legacy behavior of skipping rate limiting
	// when no client IP is available. When false, anonymous submissions are
	// refused.
	AllowAnonymous bool
}

func NewSubmitAnalyzerLeadUseCase(
	repo entity.AnalyzerLeadRepositoryInterface,
	rates HistoricalRateProvider,
	allowAnonymous bool,
) *SubmitAnalyzerLeadUseCase {
	return &SubmitAnalyzerLeadUseCase{
		Repo:           repo,
		Rates:          rates,
		AllowAnonymous: allowAnonymous,
	}
}

func (uc *SubmitAnalyzerLeadUseCase) Execute(ctx context.Context, input SubmitAnalyzerLeadInput) (*SubmitAnalyzerLeadOutput, error) {
	validationErrors := ValidateSubmitAnalyzerLeadInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: joinValidationErrors(validationErrors),
		}
	}

	ip := strings.TrimSpace(input.IPAddress)
	if ip == "" && !uc.AllowAnonymous {
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: "submissions without a client address are not accepted",
		}
	}

	// Cheap pre-check so an over-limit caller never costs a benchmark call.
	// The insert below re-checks the window atomically.
	if ip != "" {
		count, err := uc.Repo.CountRecentByIP(ctx, ip, rateLimitWindow)
		if err != nil {
			return nil, &TechnicalError{
				Code:    CodePersistenceError,
				Message: "failed to check submission volume: " + err.Error(),
			}
		}
		if count >= rateLimitMax {
			return nil, &DomainError{
				Code:    CodeRateLimitExceeded,
				Message: "too many submissions from this address, try again in an hour",
			}
		}
	}

	historicalRate, err := uc.Rates.AverageRate(ctx, input.LoanTerm, input.LoanStartMonth, input.LoanStartYear)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeHistoricalRateUnavailable,
			Message: "historical benchmark unavailable: " + err.Error(),
		}
	}

	resultType := ClassifyDeal(input.InterestRate, historicalRate)

	source := entity.LeadSource(strings.TrimSpace(input.Source))
	if source == entity.SourceHELOC && resultType != entity.ResultGreat {
		return nil, &DomainError{
			Code:    CodeHelocRequiresGreatDeal,
			Message: "HELOC offers are only available when the deal grades as great",
		}
	}

	lead := &entity.AnalyzerLead{
		ID:             uuid.New().String(),
		Source:         source,
		IPAddress:      ip,
		LoanAmount:     input.LoanAmount,
		InterestRate:   input.InterestRate,
		LoanTerm:       input.LoanTerm,
		LoanStartMonth: input.LoanStartMonth,
		LoanStartYear:  input.LoanStartYear,
		ResultType:     resultType,
		SubmittedAt:    time.Now().UTC(),
	}

	inserted, err := uc.Repo.InsertWithinLimit(ctx, lead, rateLimitWindow, rateLimitMax)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceError,
			Message: "failed to persist lead: " + err.Error(),
		}
	}
	if !inserted {
		// A concurrent submission from the same address filled the window
		// between the pre-check and the insert.
		return nil, &DomainError{
			Code:    CodeRateLimitExceeded,
			Message: "too many submissions from this address, try again in an hour",
		}
	}

	return &SubmitAnalyzerLeadOutput{
		ID:             lead.ID,
		ResultType:     resultType,
		HistoricalRate: historicalRate,
	}, nil
}
