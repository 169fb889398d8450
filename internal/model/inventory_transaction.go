package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventory transaction types.
const (
	TxImport = "IMPORT"
	TxExport = "EXPORT"
)

// InventoryTransaction records every stock movement in the ledger: production
// imports, procurement intakes, outbound fulfillment and disposals.
// A partial unique index on (batch_id) WHERE type = 'IMPORT' makes import
// approval idempotent per batch (created in infra schema patches — GORM tags
// cannot express partial indexes).
type InventoryTransaction struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LotID     *uuid.UUID `gorm:"type:uuid;index"`
	BatchID   *uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type      string     `gorm:"type:varchar(10);not null"`
	Quantity  int        `gorm:"not null"`
	Reference string
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
