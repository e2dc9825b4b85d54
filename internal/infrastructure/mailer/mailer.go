// Package mailer delivers outbound notifications over SMTP. The dialer is
// constructed once from configuration and injected wherever mail is sent;
// there is no ambient transporter state.
package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/dailysync/core/internal/infrastructure/config"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

// SMTPMailer implements ports.MailSender over a gomail dialer.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *logger.Logger
}

// New creates a mailer from the SMTP configuration.
func New(cfg config.SMTPConfig, logger *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// Send delivers one message. Callers treat failures as best-effort.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		gm.AddAlternative("text/html", msg.HTMLBody)
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	m.logger.Debugw("Mail sent", "to", msg.To, "subject", msg.Subject)

	return nil
}
