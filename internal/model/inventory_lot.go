package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryLot is a quantity of one product tied to a production batch or a
// procurement intake, with its own expiry date. Quantity never goes negative:
// decrements happen via gorm.Expr updates guarded by the current value.
type InventoryLot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	// BatchID is set for lots created by production import approval; nil for
	// procurement lots.
	BatchID    *uuid.UUID `gorm:"type:uuid;index"`
	BatchCode  string     `gorm:"not null"`
	Quantity   int        `gorm:"not null;default:0"`
	ExpiryDate time.Time  `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
