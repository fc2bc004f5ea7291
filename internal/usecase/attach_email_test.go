package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jpvales/homerate-api/internal/entity"
	"github.com/jpvales/homerate-api/internal/infra/queue"
)

func storedLead() *entity.AnalyzerLead {
	return &entity.AnalyzerLead{
		ID:             "lead-123",
		Source:         entity.SourceDealAnalyzer,
		IPAddress:      "203.0.113.7",
		LoanAmount:     decimal.NewFromInt(350000),
		InterestRate:   decimal.NewFromFloat(4.25),
		LoanTerm:       30,
		LoanStartMonth: 3,
		LoanStartYear:  2019,
		ResultType:     entity.ResultGreat,
		SubmittedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAttachEmailSuccessNotifiesBothParties(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockAnalyzerLeadRepository)
	mockQueue := new(MockNotificationProducer)

	mockRepo.On("FindByID", ctx, "lead-123").Return(storedLead(), nil)
	mockRepo.On("SetEmailIfUnset", ctx, "lead-123", "ana@example.com").Return(true, nil)
	mockQueue.On("PublishLeadNotification", ctx, mock.Anything).Return(nil)

	uc := NewAttachFollowupEmailUseCase(mockRepo, mockQueue)

	output, err := uc.Execute(ctx, AttachFollowupEmailInput{
		RecordID: "lead-123",
		Email:    "ana@example.com",
	})

	assert.NoError(t, err)
	assert.True(t, output.OK)
	assert.True(t, output.Notified)

	mockQueue.AssertNumberOfCalls(t, "PublishLeadNotification", 2)

	kinds := map[string]bool{}
	for _, call := range mockQueue.Calls {
		payload := call.Arguments.Get(1).(queue.LeadNotificationPayload)
		kinds[payload.Kind] = true
		assert.Equal(t, "lead-123", payload.LeadID)
		assert.Equal(t, "ana@example.com", payload.Email)
		assert.Equal(t, "GREAT", payload.ResultType)
	}
	assert.True(t, kinds[queue.KindAdminSummary])
	assert.True(t, kinds[queue.KindSubmitterAck])
}

func TestAttachEmailRecordNotFound(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockAnalyzerLeadRepository)
	mockQueue := new(MockNotificationProducer)

	mockRepo.On("FindByID", ctx, "ghost").Return(nil, entity.ErrLeadNotFound)

	uc := NewAttachFollowupEmailUseCase(mockRepo, mockQueue)

	output, err := uc.Execute(ctx, AttachFollowupEmailInput{
		RecordID: "ghost",
		Email:    "ana@example.com",
	})

	assert.Nil(t, output)
	assert.Equal(t, CodeRecordNotFound, ErrorCode(err))
}

func TestAttachEmailSameAddressIsIdempotent(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockAnalyzerLeadRepository)
	mockQueue := new(MockNotificationProducer)

	lead := storedLead()
	lead.Email = "ana@example.com"
	mockRepo.On("FindByID", ctx, "lead-123").Return(lead, nil)

	uc := NewAttachFollowupEmailUseCase(mockRepo, mockQueue)

	output, err := uc.Execute(ctx, AttachFollowupEmailInput{
		RecordID: "lead-123",
		Email:    "Ana@Example.com",
	})

	assert.NoError(t, err)
	assert.True(t, output.OK)
	// Re-submitting the same address does not re-notify.
	assert.False(t, output.Notified)
	mockRepo.AssertNotCalled(t, "SetEmailIfUnset", mock.Anything, mock.Anything, mock.Anything)
	mockQueue.AssertNotCalled(t, "PublishLeadNotification", mock.Anything, mock.Anything)
}

func TestAttachEmailDifferentAddressConflicts(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockAnalyzerLeadRepository)
	mockQueue := new(MockNotificationProducer)

	lead := storedLead()
	lead.Email = "ana@example.com"
	mockRepo.On("FindByID", ctx, "lead-123").Return(lead, nil)

	uc := NewAttachFollowupEmailUseCase(mockRepo, mockQueue)

	output, err := uc.Execute(ctx, AttachFollowupEmailInput{
		RecordID: "lead-123",
		Email:    "bruno@example.com",
	})

	assert.Nil(t, output)
	assert.Equal(t, CodeEmailAlreadySet, ErrorCode(err))
}

func TestAttachEmailLostRaceTreatedAsConflict(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockAnalyzerLeadRepository)
	mockQueue := new(MockNotificationProducer)

	mockRepo.On("FindByID", ctx, "lead-123").Return(storedLead(), nil)
	// Another follow-up set the email between the read and the update.
	mockRepo.On("SetEmailIfUnset", ctx, "lead-123", "ana@example.com").Return(false, nil)

	uc := NewAttachFollowupEmailUseCase(mockRepo, mockQueue)

	output, err := uc.Execute(ctx, AttachFollowupEmailInput{
		RecordID: "lead-123",
		Email:    "ana@example.com",
	})

	assert.Nil(t, output)
	assert.Equal(t, CodeEmailAlreadySet, ErrorCode(err))
	mockQueue.AssertNotCalled(t, "PublishLeadNotification", mock.Anything, mock.Anything)
}

func TestAttachEmailPublishFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockAnalyzerLeadRepository)
	mockQueue := new(MockNotificationProducer)

	mockRepo.On("FindByID", ctx, "lead-123").Return(storedLead(), nil)
	mockRepo.On("SetEmailIfUnset", ctx, "lead-123", "ana@example.com").Return(true, nil)
	mockQueue.On("PublishLeadNotification", ctx, mock.Anything).Return(errors.New("broker down"))

	uc := NewAttachFollowupEmailUseCase(mockRepo, mockQueue)

	output, err := uc.Execute(ctx, AttachFollowupEmailInput{
		RecordID: "lead-123",
		Email:    "ana@example.com",
	})

	// The email update stands even when dispatch fails.
	assert.NoError(t, err)
	assert.True(t, output.OK)
	assert.False(t, output.Notified)
}

func TestAttachEmailInvalidAddress(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockAnalyzerLeadRepository)
	mockQueue := new(MockNotificationProducer)

	uc := NewAttachFollowupEmailUseCase(mockRepo, mockQueue)

	output, err := uc.Execute(ctx, AttachFollowupEmailInput{
		RecordID: "lead-123",
		Email:    "not-an-email",
	})

	assert.Nil(t, output)
	assert.Equal(t, CodeInvalidInput, ErrorCode(err))
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
