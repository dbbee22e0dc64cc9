package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/config"
)

// EmailSender delivers a single message. Implementations must be safe for
// concurrent use by the worker.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpSender struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPSender(cfg config.SMTPConfig) EmailSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &smtpSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

func (s *smtpSender) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.from, to, subject, body)
	return smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg))
}

// OrderConfirmation renders the buyer-facing confirmation message for an
// order.placed event.
func OrderConfirmation(p models.OrderPlacedPayload) (subject, body string) {
	subject = fmt.Sprintf("Order %s confirmed", p.OrderNo)
	body = fmt.Sprintf(
		"Hi %s,\n\nThanks for your order %s.\n\nItems: %d across %d vendor(s)\nTotal: %.2f\n\nWe will email you again when your items ship.\n",
		p.Name, p.OrderNo, p.ItemCount, p.VendorCount, p.TotalAmount,
	)
	return subject, body
}
