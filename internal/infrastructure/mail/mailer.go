package mail

import (
	"context"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/helios/backend/internal/application/notify"
	"github.com/helios/backend/internal/infrastructure/config"
)

// SMTPMailer sends email over SMTP using gomail
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPMailer creates a mailer from configuration
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// Send delivers a plain-text email to a single recipient
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return err
	}

	m.logger.Debug("email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// LogMailer writes messages to the log instead of sending them.
// Used in development when mail.transmit is disabled.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a log-only mailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message instead of delivering it
func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("email suppressed (transmit disabled)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)))
	return nil
}

// NewMailer returns the SMTP mailer when transmission is enabled,
// otherwise the log-only mailer
func NewMailer(cfg config.MailConfig, logger *zap.Logger) notify.Mailer {
	if cfg.Transmit {
		return NewSMTPMailer(cfg, logger)
	}
	return NewLogMailer(logger)
}

var _ notify.Mailer = (*SMTPMailer)(nil)
var _ notify.Mailer = (*LogMailer)(nil)
