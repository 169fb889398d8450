package rules

import (
	"time"

	"github.com/google/uuid"

	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

// PendingImports returns the DONE production batches that have no IMPORT
// transaction yet. Once an IMPORT exists for a batch id the batch never
// reappears here — the approval operation is idempotent per batch.
func PendingImports(batches []model.Batch, txs []model.InventoryTransaction) []model.Batch {
	imported := make(map[uuid.UUID]bool)
	for _, tx := range txs {
		if tx.Type == model.TxImport && tx.BatchID != nil {
			imported[*tx.BatchID] = true
		}
	}

	var pending []model.Batch
	for _, b := range batches {
		if b.Status == model.BatchDone && b.Type == model.BatchTypeProduction && !imported[b.ID] {
			pending = append(pending, b)
		}
	}
	return pending
}

// DisposalEligible reports whether a lot can be disposed of: expiry strictly
// before the current date and quantity still above zero. A zeroed lot is
// never eligible, which makes disposal a natural no-op on repeat calls.
func DisposalEligible(lot model.InventoryLot, now time.Time) bool {
	if lot.Quantity <= 0 {
		return false
	}
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return lot.ExpiryDate.Before(dayStart)
}

// ExpiryStatus classifies a lot for inventory views.
const (
	ExpiryExpired  = "EXPIRED"
	ExpiryExpiring = "EXPIRING" // within 3 days
	ExpiryOK       = "OK"
)

// ExpiryStatusOf returns the expiry classification used by warehouse and
// kitchen inventory listings.
func ExpiryStatusOf(lot model.InventoryLot, now time.Time) string {
	days := int(lot.ExpiryDate.Sub(now).Hours() / 24)
	switch {
	case lot.ExpiryDate.Before(now):
		return ExpiryExpired
	case days <= 3:
		return ExpiryExpiring
	default:
		return ExpiryOK
	}
}

// FeedbackEligible reports whether a store may leave quality feedback on an
// order: the order belongs to the store, is DONE, and has no feedback yet.
func FeedbackEligible(order model.Order, storeID uuid.UUID, feedbacks []model.QualityFeedback) bool {
	if order.StoreID != storeID || order.Status != model.OrderDone {
		return false
	}
	for _, f := range feedbacks {
		if f.OrderID == order.ID {
			return false
		}
	}
	return true
}
