package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"storeadmin-be/internal/config"
	"storeadmin-be/internal/logger"

	"go.uber.org/zap"
)

// Mailer delivers transactional mail (password resets).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTP(cfg *config.Config) Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}

	return &smtpMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		from: cfg.MailFrom,
		auth: auth,
	}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		logger.FromCtx(ctx).Error("failed to send mail",
			zap.String("to", to),
			zap.Error(err),
		)
		return err
	}

	logger.FromCtx(ctx).Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// NoOp is used in development when no relay is configured.
type NoOp struct{}

func (NoOp) Send(ctx context.Context, to, subject, _ string) error {
	logger.FromCtx(ctx).Info("mail suppressed (no relay configured)",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
