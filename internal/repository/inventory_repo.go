package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

// InventoryRepository owns lots and the transaction ledger. Multi-step
// mutations (import approval, disposal) run through the Tx variants inside a
// single transaction opened by the service layer.
type InventoryRepository interface {
	CreateLot(ctx context.Context, lot *model.InventoryLot) error
	FindLotByID(ctx context.Context, id uuid.UUID) (*model.InventoryLot, error)
	FindLotByBatchID(ctx context.Context, batchID uuid.UUID) (*model.InventoryLot, error)
	ListLots(ctx context.Context) ([]model.InventoryLot, error)
	ListLotsByProduct(ctx context.Context, productID uuid.UUID) ([]model.InventoryLot, error)

	// Tx variants — callers must pass the live transaction instance.
	CreateLotTx(tx *gorm.DB, lot *model.InventoryLot) error
	AdjustLotQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error
	ZeroLotTx(tx *gorm.DB, id uuid.UUID) error
	CreateTransactionTx(tx *gorm.DB, t *model.InventoryTransaction) error

	HasImportForBatch(ctx context.Context, batchID uuid.UUID) (bool, error)
	ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]model.InventoryTransaction, int64, error)
	ListImportTransactions(ctx context.Context) ([]model.InventoryTransaction, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) DB() *gorm.DB { return r.db }

func (r *inventoryRepo) CreateLot(ctx context.Context, lot *model.InventoryLot) error {
	return r.db.WithContext(ctx).Create(lot).Error
}

func (r *inventoryRepo) FindLotByID(ctx context.Context, id uuid.UUID) (*model.InventoryLot, error) {
	var lot model.InventoryLot
	err := r.db.WithContext(ctx).Preload("Product").First(&lot, id).Error
	return &lot, err
}

func (r *inventoryRepo) FindLotByBatchID(ctx context.Context, batchID uuid.UUID) (*model.InventoryLot, error) {
	var lot model.InventoryLot
	err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).First(&lot).Error
	return &lot, err
}

func (r *inventoryRepo) ListLots(ctx context.Context) ([]model.InventoryLot, error) {
	var lots []model.InventoryLot
	err := r.db.WithContext(ctx).Preload("Product").Order("expiry_date ASC").Find(&lots).Error
	return lots, err
}

func (r *inventoryRepo) ListLotsByProduct(ctx context.Context, productID uuid.UUID) ([]model.InventoryLot, error) {
	var lots []model.InventoryLot
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("expiry_date ASC"). // FEFO ordering for consumption views
		Find(&lots).Error
	return lots, err
}

func (r *inventoryRepo) CreateLotTx(tx *gorm.DB, lot *model.InventoryLot) error {
	return tx.Create(lot).Error
}

func (r *inventoryRepo) AdjustLotQuantityTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.InventoryLot{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *inventoryRepo) ZeroLotTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.InventoryLot{}).Where("id = ?", id).
		Update("quantity", 0).Error
}

func (r *inventoryRepo) CreateTransactionTx(tx *gorm.DB, t *model.InventoryTransaction) error {
	return tx.Create(t).Error
}

func (r *inventoryRepo) HasImportForBatch(ctx context.Context, batchID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InventoryTransaction{}).
		Where("batch_id = ? AND type = ?", batchID, model.TxImport).
		Count(&count).Error
	return count > 0, err
}

func (r *inventoryRepo) ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]model.InventoryTransaction, int64, error) {
	var txs []model.InventoryTransaction
	var total int64

	q := r.db.WithContext(ctx).Model(&model.InventoryTransaction{})
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" && filter.Type != "all" {
		q = q.Where("type = ?", filter.Type)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).Find(&txs).Error
	return txs, total, err
}

func (r *inventoryRepo) ListImportTransactions(ctx context.Context) ([]model.InventoryTransaction, error) {
	var txs []model.InventoryTransaction
	err := r.db.WithContext(ctx).Where("type = ?", model.TxImport).Find(&txs).Error
	return txs, err
}
