package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product types. Raw materials are purchased, semi-finished and finished
// products come out of production batches; only FINISHED_PRODUCT is sellable
// to stores.
const (
	ProductRawMaterial  = "RAW_MATERIAL"
	ProductSemiFinished = "SEMI_FINISHED"
	ProductFinished     = "FINISHED_PRODUCT"
)

// Product is the catalog entry referenced by lots, order lines and plan
// details. Immutable once referenced except through explicit admin edit.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Type          string    `gorm:"type:varchar(20);not null;index"`
	Unit          string    `gorm:"not null;default:'unit'"`
	ShelfLifeDays int       `gorm:"not null;default:0"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
