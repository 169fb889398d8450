package worker

// manifest_worker.go
// Processes delivery manifest jobs from QueueManifest. Renders the trip
// sheet PDF for a started delivery and, when the shipper has an email on
// file, enqueues a notification carrying it as attachment.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Kitchen-Control/CentralKitchen/internal/infra"
	"github.com/Kitchen-Control/CentralKitchen/internal/repository"
)

// ManifestJobPayload is the job envelope sent to QueueManifest.
type ManifestJobPayload struct {
	DeliveryID string `json:"delivery_id"`
}

// ManifestWorker generates trip sheet PDFs for started deliveries.
type ManifestWorker struct {
	deliveryRepo repository.DeliveryRepository
	dispatcher   *Dispatcher
	storagePath  string
	kitchenName  string
}

func NewManifestWorker(deliveryRepo repository.DeliveryRepository, dispatcher *Dispatcher, storagePath, kitchenName string) *ManifestWorker {
	return &ManifestWorker{
		deliveryRepo: deliveryRepo,
		dispatcher:   dispatcher,
		storagePath:  storagePath,
		kitchenName:  kitchenName,
	}
}

// Process renders the manifest for one delivery and hands it to the
// notification queue when the shipper can receive email.
func (w *ManifestWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ManifestJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("manifest_worker: invalid payload")
		return nil // malformed payloads never succeed, don't retry
	}

	deliveryID, err := uuid.Parse(payload.DeliveryID)
	if err != nil {
		log.Error().Str("delivery_id", payload.DeliveryID).Msg("manifest_worker: invalid delivery_id")
		return nil
	}

	delivery, err := w.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return fmt.Errorf("load delivery %s: %w", payload.DeliveryID, err)
	}

	pdfPath, err := infra.GenerateManifestPDF(w.kitchenName, w.storagePath, delivery)
	if err != nil {
		return fmt.Errorf("render manifest %s: %w", payload.DeliveryID, err)
	}
	log.Info().Str("delivery_id", payload.DeliveryID).Str("pdf", pdfPath).Msg("manifest_worker: manifest generated")

	if delivery.Shipper == nil || delivery.Shipper.Email == nil || *delivery.Shipper.Email == "" {
		return nil
	}

	notif := NotificationJobPayload{
		ToEmail:        *delivery.Shipper.Email,
		Subject:        fmt.Sprintf("Trip manifest for %s", delivery.DeliveryDate.Format("2006-01-02")),
		Body:           fmt.Sprintf("Your delivery round has started. The attached manifest lists %d order(s).", len(delivery.Orders)),
		AttachmentPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueNotification(ctx, notif); err != nil {
		log.Warn().Err(err).Str("delivery_id", payload.DeliveryID).Msg("manifest_worker: failed to enqueue notification")
	}
	return nil
}
