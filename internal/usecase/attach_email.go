package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jpvales/homerate-api/internal/entity"
	"github.com/jpvales/homerate-api/internal/infra/queue"
)

// AttachFollowupEmailUseCase attaches a submitter email to an existing
// anonymous lead (set-once) and dispatches the admin summary and submitter
// acknowledgment through the notification queue. The email update commits
// first; dispatch is best effort and reported separately.
type AttachFollowupEmailUseCase struct {
	Repo  entity.AnalyzerLeadRepositoryInterface
	Queue NotificationProducerInterface
}

func NewAttachFollowupEmailUseCase(
	repo entity.AnalyzerLeadRepositoryInterface,
	producer NotificationProducerInterface,
) *AttachFollowupEmailUseCase {
	return &AttachFollowupEmailUseCase{
		Repo:  repo,
		Queue: producer,
	}
}

func (uc *AttachFollowupEmailUseCase) Execute(ctx context.Context, input AttachFollowupEmailInput) (*AttachFollowupEmailOutput, error) {
	validationErrors := ValidateFollowupEmailInput(input)
	if len(validationErrors) > 0 {
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: joinValidationErrors(validationErrors),
		}
	}

	email := strings.TrimSpace(input.Email)

	lead, err := uc.Repo.FindByID(ctx, input.RecordID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{
				Code:    CodeRecordNotFound,
				Message: "no submission found for that id",
			}
		}
		return nil, &TechnicalError{
			Code:    CodePersistenceError,
			Message: "failed to load lead: " + err.Error(),
		}
	}

	if lead.Email != "" {
		// Re-submitting the same address is an idempotent no-op; we do not
		// re-notify. A different address is a conflict, never an overwrite.
		if strings.EqualFold(lead.Email, email) {
			return &AttachFollowupEmailOutput{OK: true, Notified: false}, nil
		}
		return nil, &DomainError{
			Code:    CodeEmailAlreadySet,
			Message: "an email is already attached to this submission",
		}
	}

	updated, err := uc.Repo.SetEmailIfUnset(ctx, lead.ID, email)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceError,
			Message: "failed to attach email: " + err.Error(),
		}
	}
	if !updated {
		// Lost a race with another follow-up for the same lead.
		return nil, &DomainError{
			Code:    CodeEmailAlreadySet,
			Message: "an email is already attached to this submission",
		}
	}
	lead.Email = email

	notified := uc.notify(ctx, lead)

	return &AttachFollowupEmailOutput{OK: true, Notified: notified}, nil
}

func (uc *AttachFollowupEmailUseCase) notify(ctx context.Context, lead *entity.AnalyzerLead) bool {
	if uc.Queue == nil {
		return false
	}

	base := queue.LeadNotificationPayload{
		LeadID:       lead.ID,
		Email:        lead.Email,
		Source:       string(lead.Source),
		ResultType:   string(lead.ResultType),
		LoanAmount:   lead.LoanAmount.String(),
		InterestRate: lead.InterestRate.String(),
		LoanTerm:     lead.LoanTerm,
		IPAddress:    lead.IPAddress,
		SubmittedAt:  lead.SubmittedAt,
	}

	ok := true

	adminMsg := base
	adminMsg.Kind = queue.KindAdminSummary
	if err := uc.Queue.PublishLeadNotification(ctx, adminMsg); err != nil {
		log.Printf("⚠️ lead %s: admin notification publish failed: %v", lead.ID, err)
		ok = false
	}

	ackMsg := base
	ackMsg.Kind = queue.KindSubmitterAck
	if err := uc.Queue.PublishLeadNotification(ctx, ackMsg); err != nil {
		log.Printf("⚠️ lead %s: submitter ack publish failed: %v", lead.ID, err)
		ok = false
	}

	return ok
}
