package worker

// notification_worker.go
// Processes email notification jobs from QueueNotification: order resolution
// notices to stores and manifest deliveries to shippers.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Kitchen-Control/CentralKitchen/internal/infra"
)

// NotificationJobPayload is the job envelope sent to QueueNotification.
type NotificationJobPayload struct {
	ToEmail        string `json:"to_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

// NotificationWorker sends queued emails via SMTP.
type NotificationWorker struct {
	mailer *infra.Mailer
}

func NewNotificationWorker(mailer *infra.Mailer) *NotificationWorker {
	return &NotificationWorker{mailer: mailer}
}

// Process sends one notification email, optionally with an attachment.
func (w *NotificationWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload NotificationJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return nil // malformed payloads never succeed, don't retry
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("notification_worker: empty to_email, skipping")
		return nil
	}

	var attachments []string
	if payload.AttachmentPath != "" {
		attachments = append(attachments, payload.AttachmentPath)
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, attachments...); err != nil {
		return fmt.Errorf("send to %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("notification_worker: email sent")
	return nil
}
