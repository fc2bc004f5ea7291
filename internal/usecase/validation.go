package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jpvales/homerate-api/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateSubmitAnalyzerLeadInput(input SubmitAnalyzerLeadInput) []ValidationError {
	var errors []ValidationError

	source := entity.LeadSource(strings.TrimSpace(input.Source))
	if source == "" {
		errors = append(errors, ValidationError{"source", "is required"})
	} else if source != entity.SourceDealAnalyzer && source != entity.SourceHELOC {
		errors = append(errors, ValidationError{"source", "must be DEAL_ANALYZER or HELOC"})
	}

	if input.LoanAmount.Sign() <= 0 {
		errors = append(errors, ValidationError{"loan_amount", "must be greater than zero"})
	}

	if input.InterestRate.Sign() <= 0 {
		errors = append(errors, ValidationError{"interest_rate", "must be greater than zero"})
	}

	if input.LoanTerm != 15 && input.LoanTerm != 30 {
		errors = append(errors, ValidationError{"loan_term", "must be 15 or 30"})
	}

	if input.LoanStartMonth < 1 || input.LoanStartMonth > 12 {
		errors = append(errors, ValidationError{"loan_start_month", "must be 1-12"})
	}

	if input.LoanStartYear < 1900 {
		errors = append(errors, ValidationError{"loan_start_year", "must be 1900 or later"})
	} else if input.LoanStartYear > time.Now().Year() {
		errors = append(errors, ValidationError{"loan_start_year", "must not be in the future"})
	}

	return errors
}

func ValidateFollowupEmailInput(input AttachFollowupEmailInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.RecordID) == "" {
		errors = append(errors, ValidationError{"record_id", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	return errors
}

func joinValidationErrors(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
