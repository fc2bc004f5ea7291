package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateSubmitInputAcceptsValidPayload(t *testing.T) {
	errs := ValidateSubmitAnalyzerLeadInput(validSubmitInput())
	assert.Empty(t, errs)
}

func TestValidateSubmitInputRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SubmitAnalyzerLeadInput)
		field  string
	}{
		{"missing source", func(i *SubmitAnalyzerLeadInput) { i.Source = "" }, "source"},
		{"unknown source", func(i *SubmitAnalyzerLeadInput) { i.Source = "REFI" }, "source"},
		{"zero amount", func(i *SubmitAnalyzerLeadInput) { i.LoanAmount = decimal.Zero }, "loan_amount"},
		{"negative amount", func(i *SubmitAnalyzerLeadInput) { i.LoanAmount = decimal.NewFromInt(-5) }, "loan_amount"},
		{"zero rate", func(i *SubmitAnalyzerLeadInput) { i.InterestRate = decimal.Zero }, "interest_rate"},
		{"unsupported term", func(i *SubmitAnalyzerLeadInput) { i.LoanTerm = 20 }, "loan_term"},
		{"month too low", func(i *SubmitAnalyzerLeadInput) { i.LoanStartMonth = 0 }, "loan_start_month"},
		{"month too high", func(i *SubmitAnalyzerLeadInput) { i.LoanStartMonth = 13 }, "loan_start_month"},
		{"year before 1900", func(i *SubmitAnalyzerLeadInput) { i.LoanStartYear = 1899 }, "loan_start_year"},
		{"year in the future", func(i *SubmitAnalyzerLeadInput) { i.LoanStartYear = 2999 }, "loan_start_year"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validSubmitInput()
			tc.mutate(&input)

			errs := ValidateSubmitAnalyzerLeadInput(input)

			assert.NotEmpty(t, errs)
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tc.field)
		})
	}
}

func TestValidateFollowupEmailInput(t *testing.T) {
	errs := ValidateFollowupEmailInput(AttachFollowupEmailInput{RecordID: "lead-1", Email: "ana@example.com"})
	assert.Empty(t, errs)

	errs = ValidateFollowupEmailInput(AttachFollowupEmailInput{RecordID: "", Email: "broken"})
	assert.Len(t, errs, 2)
}
