package model

import (
	"time"

	"github.com/google/uuid"
)

// Production plan statuses.
const (
	PlanProcessing = "PROCESSING"
	PlanDone       = "DONE"
)

// ProductionPlan is a manager-issued plan covering a date range with target
// quantities per product. Kitchen staff create batches against active plans.
type ProductionPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Details []ProductionPlanDetail `gorm:"foreignKey:PlanID"`
	Batches []Batch                `gorm:"foreignKey:PlanID"`
}

// ProductionPlanDetail is one product target line on a plan.
type ProductionPlanDetail struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlanID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	TargetQuantity int       `gorm:"not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
