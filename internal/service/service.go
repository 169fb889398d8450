package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the authenticated caller as seen by the service layer: handlers
// build it from JWT claims, tests build it directly. StoreID is only set for
// store-role users and scopes every order and feedback operation.
type Actor struct {
	UserID  uuid.UUID
	Role    string
	StoreID *uuid.UUID
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
