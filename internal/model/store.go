package model

import (
	"time"

	"github.com/google/uuid"
)

// Store is a retail point supplied by the central kitchen. Store-role users
// carry a StoreID and may only act on their own store's orders.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Address   string    `gorm:"not null"`
	Phone     string
	Email     *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
