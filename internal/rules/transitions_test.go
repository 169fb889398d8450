package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

func TestOrderHappyPath(t *testing.T) {
	require.NoError(t, CanTransitionOrder(model.RoleCoordinator, model.OrderWaiting, model.OrderProcessing))
	require.NoError(t, CanTransitionOrder(model.RoleShipper, model.OrderProcessing, model.OrderDelivering))
	require.NoError(t, CanTransitionOrder(model.RoleShipper, model.OrderDelivering, model.OrderDone))
	require.NoError(t, CanTransitionOrder(model.RoleShipper, model.OrderDelivering, model.OrderDamaged))
	require.NoError(t, CanTransitionOrder(model.RoleStore, model.OrderWaiting, model.OrderCanceled))
}

func TestOrderBackwardsAndTerminalTransitionsRejected(t *testing.T) {
	cases := []struct{ from, to string }{
		{model.OrderDelivering, model.OrderWaiting},
		{model.OrderDone, model.OrderDelivering},
		{model.OrderDone, model.OrderWaiting},
		{model.OrderDamaged, model.OrderDone},
		{model.OrderCanceled, model.OrderWaiting},
		{model.OrderProcessing, model.OrderDone}, // must pass through DELIVERING
	}
	for _, tc := range cases {
		err := CanTransitionOrder(model.RoleAdmin, tc.from, tc.to)
		assert.ErrorIs(t, err, apierror.ErrIllegalTransition, "%s → %s", tc.from, tc.to)
	}
}

func TestOrderActorGating(t *testing.T) {
	// Cancellation is a store action, not a shipper action.
	err := CanTransitionOrder(model.RoleShipper, model.OrderWaiting, model.OrderCanceled)
	assert.ErrorIs(t, err, apierror.ErrIllegalTransition)

	// Only shippers resolve in-transit orders.
	err = CanTransitionOrder(model.RoleStore, model.OrderDelivering, model.OrderDone)
	assert.ErrorIs(t, err, apierror.ErrIllegalTransition)

	// Cancellation after WAITING is illegal for everyone.
	err = CanTransitionOrder(model.RoleStore, model.OrderProcessing, model.OrderCanceled)
	assert.ErrorIs(t, err, apierror.ErrIllegalTransition)
}

func TestDeliveryTransitions(t *testing.T) {
	require.NoError(t, CanTransitionDelivery(model.RoleShipper, model.DeliveryWaiting, model.DeliveryProcessing))
	require.NoError(t, CanTransitionDelivery(model.RoleCoordinator, model.DeliveryProcessing, model.DeliveryDone))

	assert.ErrorIs(t, CanTransitionDelivery(model.RoleShipper, model.DeliveryWaiting, model.DeliveryDone),
		apierror.ErrIllegalTransition)
	assert.ErrorIs(t, CanTransitionDelivery(model.RoleStore, model.DeliveryWaiting, model.DeliveryProcessing),
		apierror.ErrIllegalTransition)
	assert.ErrorIs(t, CanTransitionDelivery(model.RoleShipper, model.DeliveryDone, model.DeliveryProcessing),
		apierror.ErrIllegalTransition)
}

func TestBatchTransitions(t *testing.T) {
	require.NoError(t, CanTransitionBatch(model.RoleKitchen, model.BatchProcessing, model.BatchDone))
	assert.ErrorIs(t, CanTransitionBatch(model.RoleStore, model.BatchProcessing, model.BatchDone),
		apierror.ErrIllegalTransition)
	assert.ErrorIs(t, CanTransitionBatch(model.RoleKitchen, model.BatchDone, model.BatchProcessing),
		apierror.ErrIllegalTransition)
}

func TestOrderTerminal(t *testing.T) {
	assert.True(t, OrderTerminal(model.OrderDone))
	assert.True(t, OrderTerminal(model.OrderDamaged))
	assert.True(t, OrderTerminal(model.OrderCanceled))
	assert.False(t, OrderTerminal(model.OrderWaiting))
	assert.False(t, OrderTerminal(model.OrderDelivering))
}

func TestCapabilities(t *testing.T) {
	assert.True(t, Allowed(model.RoleWarehouse, CapApproveImport))
	assert.True(t, Allowed(model.RoleStore, CapSubmitFeedback))
	assert.False(t, Allowed(model.RoleStore, CapApproveImport))
	assert.False(t, Allowed(model.RoleShipper, CapManageProducts))
	assert.Empty(t, Capabilities("janitor"))
}
