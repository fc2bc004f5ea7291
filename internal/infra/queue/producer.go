package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	KindAdminSummary = "ADMIN_SUMMARY"
	KindSubmitterAck = "SUBMITTER_ACK"
)

// LeadNotificationPayload is the message published for each follow-up
// notification. Kind selects the mail template on the consuming side.
type LeadNotificationPayload struct {
	Kind string `json:"kind"`

	LeadID       string    `json:"lead_id"`
	Email        string    `json:"email"`
	Source       string    `json:"source"`
	ResultType   string    `json:"result_type"`
	LoanAmount   string    `json:"loan_amount"`
	InterestRate string    `json:"interest_rate"`
	LoanTerm     int       `json:"loan_term"`
	IPAddress    string    `json:"ip_address,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadNotification(ctx context.Context, payload LeadNotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
