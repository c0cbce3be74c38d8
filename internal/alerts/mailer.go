package alerts

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/sudo-init-do/solosphere/internal/config"
	"github.com/sudo-init-do/solosphere/internal/logger"
)

// Mailer delivers a rendered email.
type Mailer interface {
	Send(ctx context.Context, env EmailEnvelope) error
}

// NewMailer returns an SMTP mailer, or a log-only mailer when no SMTP host is set.
func NewMailer(cfg config.SMTPConfig, log *logger.Logger) Mailer {
	if cfg.Host == "" {
		return &LogMailer{log: log}
	}
	return &SMTPMailer{cfg: cfg}
}

// LogMailer writes envelopes to the log instead of sending them.
type LogMailer struct {
	log *logger.Logger
}

func (m *LogMailer) Send(_ context.Context, env EmailEnvelope) error {
	m.log.Info("email (log only)", "to", env.To, "subject", env.Subject)
	return nil
}

// SMTPMailer sends plain text email over implicit TLS.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func buildMessage(from string, env EmailEnvelope) string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", env.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", env.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n" + env.Body + "\r\n")
	return msg.String()
}

// Send sends a plain text email using SMTP with TLS.
func (m *SMTPMailer) Send(ctx context.Context, env EmailEnvelope) error {
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: m.cfg.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer c.Close()

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(env.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write([]byte(buildMessage(m.cfg.From, env))); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return c.Quit()
}
