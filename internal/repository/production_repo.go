package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

type ProductionRepository interface {
	CreatePlan(ctx context.Context, p *model.ProductionPlan) error
	FindPlanByID(ctx context.Context, id uuid.UUID) (*model.ProductionPlan, error)
	ListPlans(ctx context.Context) ([]model.ProductionPlan, error)
	UpdatePlanStatus(ctx context.Context, id uuid.UUID, status string) error

	CreateBatch(ctx context.Context, b *model.Batch) error
	FindBatchByID(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	ListBatchesByPlan(ctx context.Context, planID uuid.UUID) ([]model.Batch, error)
	// ListFinishedProductionBatches returns DONE PRODUCTION batches — the
	// candidate set for the pending-import view.
	ListFinishedProductionBatches(ctx context.Context) ([]model.Batch, error)
	UpdateBatchStatus(ctx context.Context, id uuid.UUID, status string) error
}

type productionRepo struct{ db *gorm.DB }

func NewProductionRepository(db *gorm.DB) ProductionRepository { return &productionRepo{db: db} }

func (r *productionRepo) CreatePlan(ctx context.Context, p *model.ProductionPlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productionRepo) FindPlanByID(ctx context.Context, id uuid.UUID) (*model.ProductionPlan, error) {
	var p model.ProductionPlan
	err := r.db.WithContext(ctx).
		Preload("Details.Product").
		Preload("Batches.Product").
		First(&p, id).Error
	return &p, err
}

func (r *productionRepo) ListPlans(ctx context.Context) ([]model.ProductionPlan, error) {
	var plans []model.ProductionPlan
	err := r.db.WithContext(ctx).
		Preload("Details.Product").
		Preload("Batches.Product").
		Order("start_date DESC").
		Find(&plans).Error
	return plans, err
}

func (r *productionRepo) UpdatePlanStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.ProductionPlan{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *productionRepo) CreateBatch(ctx context.Context, b *model.Batch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *productionRepo) FindBatchByID(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	var b model.Batch
	err := r.db.WithContext(ctx).Preload("Product").First(&b, id).Error
	return &b, err
}

func (r *productionRepo) ListBatchesByPlan(ctx context.Context, planID uuid.UUID) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Preload("Product").
		Find(&batches).Error
	return batches, err
}

func (r *productionRepo) ListFinishedProductionBatches(ctx context.Context) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Where("status = ? AND type = ?", model.BatchDone, model.BatchTypeProduction).
		Preload("Product").
		Find(&batches).Error
	return batches, err
}

func (r *productionRepo) UpdateBatchStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Batch{}).
		Where("id = ?", id).Update("status", status).Error
}
