package model

import (
	"time"

	"github.com/google/uuid"
)

// Delivery statuses.
const (
	DeliveryWaiting    = "WAITING"
	DeliveryProcessing = "PROCESSING"
	DeliveryDone       = "DONE"
)

// Delivery is a shipper's trip carrying a set of orders. Starting a delivery
// flips it to PROCESSING and every member order to DELIVERING in one
// transaction; it rolls up to DONE when the last member order reaches a
// terminal state.
type Delivery struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ShipperID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	DeliveryDate time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Shipper *User   `gorm:"foreignKey:ShipperID"`
	Orders  []Order `gorm:"foreignKey:DeliveryID"`
}

// TableName overrides GORM's default pluralization (deliverys → deliveries).
func (Delivery) TableName() string { return "deliveries" }
