package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]model.Order, error)
	ListByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]model.Order, error)
	// ListReserving returns orders in stock-reserving statuses with their
	// details preloaded — the order half of the availability snapshot.
	ListReserving(ctx context.Context, statuses []string) ([]model.Order, error)

	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	AssignDeliveryTx(tx *gorm.DB, orderID, deliveryID uuid.UUID) error

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	return tx.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Details.Product").Preload("Store").
		First(&o, id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.StoreID != "" {
		q = q.Where("store_id = ?", filter.StoreID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Details.Product").Preload("Store").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Preload("Details.Product").Preload("Store").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID).
		Preload("Details.Product").Preload("Store").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListReserving(ctx context.Context, statuses []string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Preload("Details").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Order{}).Where("id = ?", id).Update("status", status).Error
}

func (r *orderRepo) AssignDeliveryTx(tx *gorm.DB, orderID, deliveryID uuid.UUID) error {
	return tx.Model(&model.Order{}).Where("id = ?", orderID).
		Update("delivery_id", deliveryID).Error
}
