package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. DONE, DAMAGED and CANCELED are terminal.
const (
	OrderWaiting    = "WAITING"
	OrderProcessing = "PROCESSING"
	OrderDelivering = "DELIVERING"
	OrderDone       = "DONE"
	OrderDamaged    = "DAMAGED"
	OrderCanceled   = "CANCELED"
)

// Order is a store's request for finished products. Invariant: every detail
// line has quantity > 0, enforced at creation.
type Order struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status     string     `gorm:"type:varchar(20);not null;index"`
	DeliveryID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Store   *Store        `gorm:"foreignKey:StoreID"`
	Details []OrderDetail `gorm:"foreignKey:OrderID"`
}

// OrderDetail is one product line on an order.
type OrderDetail struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
