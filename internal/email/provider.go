package email

import (
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Provider sends a rendered message. Services depend on this interface so
// tests can swap in a recording fake.
type Provider interface {
	Send(to, subject, htmlBody string) error
}

type SMTPProvider struct {
	cfg *config.Config
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.Email.FromEmail, p.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

// LogProvider writes messages to the log instead of the wire. Used in
// development and tests where no SMTP server is configured.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(to, subject, htmlBody string) error {
	logger.Info("email (log provider)",
		"to", to,
		"subject", subject,
		"body_len", len(htmlBody),
	)
	return nil
}

// NewProvider picks SMTP when a host is configured, otherwise the log
// provider, so local runs work without mail credentials.
func NewProvider(cfg *config.Config) Provider {
	if cfg.Email.SMTPHost == "" {
		return NewLogProvider()
	}
	return NewSMTPProvider(cfg)
}
