package rules

import (
	"fmt"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

// Status machines as explicit transition tables: (from, to) → roles allowed
// to drive the edge. Anything not in the table is illegal and must be
// rejected without mutation.

type edge struct{ from, to string }

var orderTransitions = map[edge][]string{
	// Coordinator accepts a waiting order into processing.
	{model.OrderWaiting, model.OrderProcessing}: {model.RoleCoordinator, model.RoleAdmin},
	// Delivery start flips member orders to DELIVERING (driven by the
	// assigned shipper or the coordinator, via DeliveryService.Start).
	{model.OrderWaiting, model.OrderDelivering}:    {model.RoleShipper, model.RoleCoordinator},
	{model.OrderProcessing, model.OrderDelivering}: {model.RoleShipper, model.RoleCoordinator},
	// Shipper resolves an in-transit order. DONE and DAMAGED are terminal.
	{model.OrderDelivering, model.OrderDone}:    {model.RoleShipper},
	{model.OrderDelivering, model.OrderDamaged}: {model.RoleShipper},
	// Cancellation is only legal while WAITING and only for the owning store.
	{model.OrderWaiting, model.OrderCanceled}: {model.RoleStore, model.RoleAdmin},
}

var deliveryTransitions = map[edge][]string{
	{model.DeliveryWaiting, model.DeliveryProcessing}:    {model.RoleShipper, model.RoleCoordinator},
	{model.DeliveryProcessing, model.DeliveryDone}:       {model.RoleShipper, model.RoleCoordinator},
}

var batchTransitions = map[edge][]string{
	{model.BatchProcessing, model.BatchDone}: {model.RoleKitchen, model.RoleAdmin},
}

// CanTransitionOrder reports whether role may move an order from → to.
// Returns a wrapped apierror.ErrIllegalTransition otherwise.
func CanTransitionOrder(role, from, to string) error {
	return canTransition(orderTransitions, "order", role, from, to)
}

// CanTransitionDelivery reports whether role may move a delivery from → to.
func CanTransitionDelivery(role, from, to string) error {
	return canTransition(deliveryTransitions, "delivery", role, from, to)
}

// CanTransitionBatch reports whether role may move a batch from → to.
func CanTransitionBatch(role, from, to string) error {
	return canTransition(batchTransitions, "batch", role, from, to)
}

func canTransition(table map[edge][]string, entity, role, from, to string) error {
	roles, ok := table[edge{from, to}]
	if !ok {
		return fmt.Errorf("%w: %s %s → %s", apierror.ErrIllegalTransition, entity, from, to)
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s may not move %s %s → %s",
		apierror.ErrIllegalTransition, role, entity, from, to)
}

// OrderTerminal reports whether an order status admits no further transition.
func OrderTerminal(status string) bool {
	switch status {
	case model.OrderDone, model.OrderDamaged, model.OrderCanceled:
		return true
	}
	return false
}
