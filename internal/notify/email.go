package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	gomail "gopkg.in/mail.v2"

	"insiderwatch/internal/domain"
)

// EmailConfig holds SMTP configuration for the email sink.
type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
	To       string
}

// EmailSink delivers plain-text filing alerts over SMTP.
type EmailSink struct {
	cfg EmailConfig
}

func NewEmailSink(cfg EmailConfig) *EmailSink {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &EmailSink{cfg: cfg}
}

func (e *EmailSink) Name() string { return "email" }

func (e *EmailSink) Deliver(ctx context.Context, f domain.Filing) error {
	subject := fmt.Sprintf("Insider Trading Alert: %s", orNA(f.Ticker))
	body := fmt.Sprintf("Company: %s\nTicker: %s\nCIK: %s\nFiling Date: %s\nAccession: %s\nURL: %s\n\n%s\n",
		orNA(f.CompanyName),
		orNA(f.Ticker),
		orNA(f.CIK),
		orNA(f.FilingDate),
		orNA(f.AccessionNumber),
		f.URL,
		strings.TrimSpace(f.Summary),
	)

	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.From)
	m.SetHeader("To", e.cfg.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	dialer := gomail.NewDialer(e.cfg.SMTPHost, e.cfg.SMTPPort, e.cfg.Username, e.cfg.Password)
	dialer.Timeout = webhookTimeout

	done := make(chan error, 1)
	go func() { done <- dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(webhookTimeout + time.Second):
		return fmt.Errorf("smtp send timed out")
	}
}
