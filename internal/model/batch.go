package model

import (
	"time"

	"github.com/google/uuid"
)

// Batch statuses and types.
const (
	BatchProcessing = "PROCESSING"
	BatchDone       = "DONE"

	BatchTypeProduction  = "PRODUCTION"
	BatchTypeProcurement = "PROCUREMENT"
)

// Batch is a production run of one product under a plan. A DONE production
// batch with no IMPORT transaction is "pending import" — warehouse approval
// moves its quantity into an inventory lot exactly once.
type Batch struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlanID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Code       string    `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	Status     string    `gorm:"type:varchar(20);not null;index"`
	Type       string    `gorm:"type:varchar(20);not null;default:'PRODUCTION'"`
	ExpiryDate time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization (batchs → batches).
func (Batch) TableName() string { return "batches" }
