package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/jpvales/homerate-api/internal/infra/queue"
)

//go:embed templates/*.html
var templateFS embed.FS

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendLeadSummary mails the operations inbox one summary per follow-up:
// grade, loan terms and submitter address.
func (s *EmailSender) SendLeadSummary(to string, payload queue.LeadNotificationPayload) error {
	body, err := s.render("lead_summary.html", payload)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("New analyzer lead: %s (%d-year, %s%%)", payload.ResultType, payload.LoanTerm, payload.InterestRate)
	return s.send(to, subject, body)
}

// SendSubmitterAck acknowledges receipt to the submitter.
func (s *EmailSender) SendSubmitterAck(to string, payload queue.LeadNotificationPayload) error {
	body, err := s.render("submitter_ack.html", payload)
	if err != nil {
		return err
	}

	return s.send(to, "We received your deal analysis request", body)
}

func (s *EmailSender) render(name string, payload queue.LeadNotificationPayload) (string, error) {
	t, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to load mail template %s: %w", name, err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, payload); err != nil {
		return "", fmt.Errorf("failed to render mail template %s: %w", name, err)
	}

	return body.String(), nil
}

func (s *EmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}

	return nil
}
