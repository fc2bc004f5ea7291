package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadMailer is the contract the worker needs from the mail layer.
type LeadMailer interface {
	SendLeadSummary(to string, payload LeadNotificationPayload) error
	SendSubmitterAck(to string, payload LeadNotificationPayload) error
}

// Worker drains the notification queue and turns each message into one SMTP
// send. Mail failures nack the message onto the DLQ; the lead row itself is
// already committed and never touched here.
type Worker struct {
	Channel    *amqp.Channel
	Mailer     LeadMailer
	AdminEmail string
}

func NewWorker(ch *amqp.Channel, mailer LeadMailer, adminEmail string) *Worker {
	return &Worker{
		Channel:    ch,
		Mailer:     mailer,
		AdminEmail: adminEmail,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack, manual is safer
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] failed to register consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadNotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] malformed message: %s", err)
				// Poison message, reject without requeue.
				d.Nack(false, false)
				continue
			}

			if err := w.deliver(payload); err != nil {
				log.Printf("❌ [WORKER] delivery failed for lead %s (%s): %s", payload.LeadID, payload.Kind, err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] %s sent for lead %s", payload.Kind, payload.LeadID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Notification worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) deliver(payload LeadNotificationPayload) error {
	switch payload.Kind {
	case KindAdminSummary:
		return w.Mailer.SendLeadSummary(w.AdminEmail, payload)

	case KindSubmitterAck:
		if payload.Email == "" {
			log.Printf("⚠️ [WORKER] ack for lead %s has no recipient, dropping", payload.LeadID)
			return nil
		}
		return w.Mailer.SendSubmitterAck(payload.Email, payload)

	default:
		// Unknown kind: ack it away, there is nothing sensible to retry.
		log.Printf("⚠️ [WORKER] unknown notification kind: %s", payload.Kind)
		return nil
	}
}
