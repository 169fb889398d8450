package model

import (
	"time"

	"github.com/google/uuid"
)

// QualityFeedback is a store's rating of a completed order. The unique index
// on OrderID backs the at-most-one-feedback-per-order invariant against
// concurrent submissions — the service-level existence check alone is racy.
type QualityFeedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Rating    int       `gorm:"not null"` // 1–5
	Comment   *string
	CreatedAt time.Time

	Order *Order `gorm:"foreignKey:OrderID"`
}
