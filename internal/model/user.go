package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles. Each maps to a capability set in the rules package — routing and
// status transitions consume the same declarative mapping, never a numeric id.
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleKitchen     = "kitchen"
	RoleCoordinator = "coordinator"
	RoleShipper     = "shipper"
	RoleStore       = "store"
	RoleWarehouse   = "warehouse"
)

// User stores system users with role-based access.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	FullName     string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	// StoreID links store-role users to the store they order for; nil for
	// kitchen-side roles.
	StoreID   *uuid.UUID `gorm:"type:uuid;index"`
	Active    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Store *Store `gorm:"foreignKey:StoreID"`
}
