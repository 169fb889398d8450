package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

type DeliveryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, d *model.Delivery) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Delivery, error)
	List(ctx context.Context) ([]model.Delivery, error)
	ListByShipper(ctx context.Context, shipperID uuid.UUID) ([]model.Delivery, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	DB() *gorm.DB
}

type deliveryRepo struct{ db *gorm.DB }

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository { return &deliveryRepo{db: db} }

func (r *deliveryRepo) DB() *gorm.DB { return r.db }

func (r *deliveryRepo) Create(ctx context.Context, tx *gorm.DB, d *model.Delivery) error {
	return tx.WithContext(ctx).Create(d).Error
}

func (r *deliveryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	var d model.Delivery
	err := r.db.WithContext(ctx).
		Preload("Shipper").
		Preload("Orders.Details.Product").Preload("Orders.Store").
		First(&d, id).Error
	return &d, err
}

func (r *deliveryRepo) List(ctx context.Context) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.WithContext(ctx).
		Preload("Shipper").
		Preload("Orders.Details.Product").Preload("Orders.Store").
		Order("delivery_date DESC").
		Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) ListByShipper(ctx context.Context, shipperID uuid.UUID) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := r.db.WithContext(ctx).
		Where("shipper_id = ?", shipperID).
		Preload("Orders.Details.Product").Preload("Orders.Store").
		Order("delivery_date DESC").
		Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Delivery{}).Where("id = ?", id).Update("status", status).Error
}
