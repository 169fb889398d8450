package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial unique indexes, check constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // surface unique violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. Shared with the integration test setup.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.Store{},
		&model.User{},
		&model.InventoryLot{},
		&model.InventoryTransaction{},
		&model.Order{},
		&model.OrderDetail{},
		&model.Delivery{},
		&model.ProductionPlan{},
		&model.ProductionPlanDetail{},
		&model.Batch{},
		&model.QualityFeedback{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM tags cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Import approval is idempotent per batch: at most one IMPORT
		// transaction may reference a batch id.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_inventory_transactions_import_batch') THEN
		    CREATE UNIQUE INDEX uni_inventory_transactions_import_batch
		        ON inventory_transactions (batch_id)
		        WHERE type = 'IMPORT' AND batch_id IS NOT NULL;
		  END IF;
		END $$`,
		// Order lines must hold positive quantities.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_order_details_quantity_positive') THEN
		    ALTER TABLE order_details
		      ADD CONSTRAINT chk_order_details_quantity_positive CHECK (quantity > 0);
		  END IF;
		END $$`,
		// Lot quantity never goes negative even under concurrent decrements.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_inventory_lots_quantity_nonnegative') THEN
		    ALTER TABLE inventory_lots
		      ADD CONSTRAINT chk_inventory_lots_quantity_nonnegative CHECK (quantity >= 0);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
