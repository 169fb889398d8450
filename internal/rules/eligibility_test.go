package rules

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

func TestPendingImports(t *testing.T) {
	doneBatch := model.Batch{ID: uuid.New(), Status: model.BatchDone, Type: model.BatchTypeProduction, Quantity: 50}
	runningBatch := model.Batch{ID: uuid.New(), Status: model.BatchProcessing, Type: model.BatchTypeProduction}
	importedBatch := model.Batch{ID: uuid.New(), Status: model.BatchDone, Type: model.BatchTypeProduction}

	txs := []model.InventoryTransaction{
		{Type: model.TxImport, BatchID: &importedBatch.ID, Quantity: 30},
		{Type: model.TxExport, BatchID: &doneBatch.ID, Quantity: 5}, // EXPORT does not satisfy import
	}

	pending := PendingImports([]model.Batch{doneBatch, runningBatch, importedBatch}, txs)
	require.Len(t, pending, 1)
	assert.Equal(t, doneBatch.ID, pending[0].ID)
}

func TestPendingImportsDropsBatchAfterImport(t *testing.T) {
	b := model.Batch{ID: uuid.New(), Status: model.BatchDone, Type: model.BatchTypeProduction, Quantity: 50}

	pending := PendingImports([]model.Batch{b}, nil)
	require.Len(t, pending, 1)

	// After the IMPORT transaction exists the batch must never reappear.
	txs := []model.InventoryTransaction{{Type: model.TxImport, BatchID: &b.ID, Quantity: 50}}
	assert.Empty(t, PendingImports([]model.Batch{b}, txs))
}

func TestDisposalEligible(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	assert.True(t, DisposalEligible(model.InventoryLot{Quantity: 12, ExpiryDate: yesterday}, now))
	assert.False(t, DisposalEligible(model.InventoryLot{Quantity: 0, ExpiryDate: yesterday}, now),
		"zeroed lot is no longer eligible")
	assert.False(t, DisposalEligible(model.InventoryLot{Quantity: 12, ExpiryDate: tomorrow}, now))

	// Expiring later today is not yet disposal-eligible.
	laterToday := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	assert.False(t, DisposalEligible(model.InventoryLot{Quantity: 3, ExpiryDate: laterToday}, now))
}

func TestExpiryStatusOf(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, ExpiryExpired, ExpiryStatusOf(model.InventoryLot{ExpiryDate: now.AddDate(0, 0, -2)}, now))
	assert.Equal(t, ExpiryExpiring, ExpiryStatusOf(model.InventoryLot{ExpiryDate: now.AddDate(0, 0, 2)}, now))
	assert.Equal(t, ExpiryOK, ExpiryStatusOf(model.InventoryLot{ExpiryDate: now.AddDate(0, 0, 10)}, now))
}

func TestFeedbackEligible(t *testing.T) {
	storeID := uuid.New()
	order := model.Order{ID: uuid.New(), StoreID: storeID, Status: model.OrderDone}

	assert.True(t, FeedbackEligible(order, storeID, nil))

	// Wrong store.
	assert.False(t, FeedbackEligible(order, uuid.New(), nil))

	// Not DONE yet.
	waiting := model.Order{ID: uuid.New(), StoreID: storeID, Status: model.OrderDelivering}
	assert.False(t, FeedbackEligible(waiting, storeID, nil))

	// Existing feedback blocks a second one.
	fb := []model.QualityFeedback{{OrderID: order.ID, Rating: 4}}
	assert.False(t, FeedbackEligible(order, storeID, fb))
}
