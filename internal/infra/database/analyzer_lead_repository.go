package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jpvales/homerate-api/internal/entity"
)

type AnalyzerLeadRepository struct {
	DB *sql.DB
}

func NewAnalyzerLeadRepository(db *sql.DB) *AnalyzerLeadRepository {
	return &AnalyzerLeadRepository{DB: db}
}

// InsertWithinLimit counts the trailing window and inserts in a single
// statement, so two submissions from the same address cannot both pass a
// separate check before either commits.
func (r *AnalyzerLeadRepository) InsertWithinLimit(ctx context.Context, lead *entity.AnalyzerLead, window time.Duration, max int) (bool, error) {
	query := `
		INSERT INTO analyzer_leads (
			id, source, email, ip_address,
			loan_amount, interest_rate,
			loan_term, loan_start_month, loan_start_year,
			result_type, submitted_at
		)
		SELECT $1, $2, NULL, $3,
			$4, $5,
			$6, $7, $8,
			$9, $10
		WHERE $3::text IS NULL OR (
			SELECT COUNT(*) FROM analyzer_leads
			WHERE ip_address = $3
			  AND submitted_at > $10::timestamptz - make_interval(mins => $11)
		) < $12
		RETURNING id
	`

	var insertedID string
	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		string(lead.Source),
		nullString(lead.IPAddress),
		lead.LoanAmount,
		lead.InterestRate,
		lead.LoanTerm,
		lead.LoanStartMonth,
		lead.LoanStartYear,
		string(lead.ResultType),
		lead.SubmittedAt,
		int(window.Minutes()),
		max,
	).Scan(&insertedID)

	if errors.Is(err, sql.ErrNoRows) {
		// Window already full, nothing written.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert analyzer lead: %w", err)
	}

	return true, nil
}

func (r *AnalyzerLeadRepository) CountRecentByIP(ctx context.Context, ip string, window time.Duration) (int, error) {
	query := `
		SELECT COUNT(*) FROM analyzer_leads
		WHERE ip_address = $1
		  AND submitted_at > NOW() - make_interval(mins => $2)
	`

	var count int
	err := r.DB.QueryRowContext(ctx, query, ip, int(window.Minutes())).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent submissions: %w", err)
	}

	return count, nil
}

func (r *AnalyzerLeadRepository) FindByID(ctx context.Context, id string) (*entity.AnalyzerLead, error) {
	query := `
		SELECT
			id, source, email, ip_address,
			loan_amount, interest_rate,
			loan_term, loan_start_month, loan_start_year,
			result_type, submitted_at
		FROM analyzer_leads
		WHERE id = $1
	`

	var lead entity.AnalyzerLead
	var email, ip sql.NullString

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&lead.ID,
		&lead.Source,
		&email,
		&ip,
		&lead.LoanAmount,
		&lead.InterestRate,
		&lead.LoanTerm,
		&lead.LoanStartMonth,
		&lead.LoanStartYear,
		&lead.ResultType,
		&lead.SubmittedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analyzer lead: %w", err)
	}

	lead.Email = email.String
	lead.IPAddress = ip.String

	return &lead, nil
}

// SetEmailIfUnset only writes while the column is still NULL; a second
// follow-up can never overwrite the first.
func (r *AnalyzerLeadRepository) SetEmailIfUnset(ctx context.Context, id, email string) (bool, error) {
	query := `UPDATE analyzer_leads SET email = $2 WHERE id = $1 AND email IS NULL`

	result, err := r.DB.ExecContext(ctx, query, id, email)
	if err != nil {
		return false, fmt.Errorf("failed to attach email: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
