package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"

	"github.com/Kitchen-Control/CentralKitchen/internal/config"
)

// Mailer sends operational notifications (order resolutions, trip manifests)
// over plain SMTP. When no host is configured it logs and drops the message,
// which keeps local development working without a relay.
type Mailer struct {
	cfg config.Config
}

func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to, subject, body string, attachments ...string) error {
	if m.cfg.SMTPHost == "" {
		log.Info().Str("to", to).Str("subject", subject).Msg("smtp not configured, dropping email")
		return nil
	}

	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", m.cfg.KitchenName, m.cfg.SMTPFrom)
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	for _, path := range attachments {
		if _, err := e.AttachFile(path); err != nil {
			return fmt.Errorf("attach %s: %w", path, err)
		}
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}
