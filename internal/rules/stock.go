// Package rules is the derived-view engine: pure functions over entity
// snapshots. Nothing here touches storage, the clock (callers pass `now`),
// or any transport — services and handlers feed in collections and act on
// the results, so the same rules back both API responses and mutations.
package rules

import (
	"github.com/google/uuid"

	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

// ReservingStatuses are the order statuses that hold stock. DELIVERING is
// deliberately excluded: goods on a truck have already left the warehouse,
// so the physical lots no longer cover them. If domain owners decide
// in-transit orders should keep reserving, add OrderDelivering here.
var ReservingStatuses = map[string]bool{
	model.OrderWaiting:    true,
	model.OrderProcessing: true,
}

// AvailableStock returns the sellable quantity for one product:
// total physical lot quantity minus quantity reserved by unfulfilled orders,
// clamped at zero. A product with no lots and no reservations yields 0.
func AvailableStock(productID uuid.UUID, lots []model.InventoryLot, orders []model.Order) int {
	physical := 0
	for _, lot := range lots {
		if lot.ProductID == productID {
			physical += lot.Quantity
		}
	}

	reserved := 0
	for _, o := range orders {
		if !ReservingStatuses[o.Status] {
			continue
		}
		for _, d := range o.Details {
			if d.ProductID == productID {
				reserved += d.Quantity
			}
		}
	}

	if avail := physical - reserved; avail > 0 {
		return avail
	}
	return 0
}

// AvailableStockMap computes availability for every product present in the
// lot snapshot. Products that only appear in orders (no lots) map to 0.
func AvailableStockMap(lots []model.InventoryLot, orders []model.Order) map[uuid.UUID]int {
	physical := make(map[uuid.UUID]int)
	for _, lot := range lots {
		physical[lot.ProductID] += lot.Quantity
	}

	reserved := make(map[uuid.UUID]int)
	for _, o := range orders {
		if !ReservingStatuses[o.Status] {
			continue
		}
		for _, d := range o.Details {
			reserved[d.ProductID] += d.Quantity
		}
	}

	avail := make(map[uuid.UUID]int, len(physical))
	for pid, qty := range physical {
		a := qty - reserved[pid]
		if a < 0 {
			a = 0
		}
		avail[pid] = a
	}
	for pid := range reserved {
		if _, ok := avail[pid]; !ok {
			avail[pid] = 0
		}
	}
	return avail
}
