package rules

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

func orderWith(status string, productID uuid.UUID, qty int) model.Order {
	return model.Order{
		ID:      uuid.New(),
		StoreID: uuid.New(),
		Status:  status,
		Details: []model.OrderDetail{{ID: uuid.New(), ProductID: productID, Quantity: qty}},
	}
}

func TestAvailableStockSubtractsActiveReservations(t *testing.T) {
	productID := uuid.New()
	lots := []model.InventoryLot{{ProductID: productID, Quantity: 30}}
	orders := []model.Order{orderWith(model.OrderWaiting, productID, 10)}

	assert.Equal(t, 20, AvailableStock(productID, lots, orders))
}

func TestAvailableStockIgnoresTerminalOrders(t *testing.T) {
	productID := uuid.New()
	lots := []model.InventoryLot{{ProductID: productID, Quantity: 30}}
	orders := []model.Order{
		orderWith(model.OrderWaiting, productID, 10),
		orderWith(model.OrderDone, productID, 100),
	}

	// DONE orders do not reserve — availability is unchanged.
	assert.Equal(t, 20, AvailableStock(productID, lots, orders))
}

func TestAvailableStockIgnoresDeliveringOrders(t *testing.T) {
	productID := uuid.New()
	lots := []model.InventoryLot{{ProductID: productID, Quantity: 30}}
	orders := []model.Order{
		orderWith(model.OrderDelivering, productID, 25),
		orderWith(model.OrderCanceled, productID, 25),
	}

	assert.Equal(t, 30, AvailableStock(productID, lots, orders))
}

func TestAvailableStockClampsAtZero(t *testing.T) {
	productID := uuid.New()
	lots := []model.InventoryLot{{ProductID: productID, Quantity: 5}}
	orders := []model.Order{
		orderWith(model.OrderWaiting, productID, 4),
		orderWith(model.OrderProcessing, productID, 4),
	}

	assert.Equal(t, 0, AvailableStock(productID, lots, orders))
}

func TestAvailableStockUnknownProductIsZero(t *testing.T) {
	assert.Equal(t, 0, AvailableStock(uuid.New(), nil, nil))
}

func TestAvailableStockSumsAcrossLots(t *testing.T) {
	productID := uuid.New()
	other := uuid.New()
	lots := []model.InventoryLot{
		{ProductID: productID, Quantity: 12},
		{ProductID: productID, Quantity: 8},
		{ProductID: other, Quantity: 50},
	}

	assert.Equal(t, 20, AvailableStock(productID, lots, nil))
}

func TestAvailableStockMap(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	lots := []model.InventoryLot{
		{ProductID: a, Quantity: 10},
		{ProductID: b, Quantity: 3},
	}
	orders := []model.Order{
		orderWith(model.OrderProcessing, a, 4),
		orderWith(model.OrderWaiting, b, 9), // over-reserved — clamps to 0
		orderWith(model.OrderWaiting, c, 2), // no lots at all
	}

	m := AvailableStockMap(lots, orders)
	assert.Equal(t, 6, m[a])
	assert.Equal(t, 0, m[b])
	assert.Equal(t, 0, m[c])
}
