package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

type FeedbackRepository interface {
	// Create inserts a feedback record. The unique index on order_id turns a
	// lost race between two concurrent submissions into a constraint error.
	Create(ctx context.Context, f *model.QualityFeedback) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.QualityFeedback, error)
	List(ctx context.Context) ([]model.QualityFeedback, error)
	ListByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]model.QualityFeedback, error)
}

type feedbackRepo struct{ db *gorm.DB }

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository { return &feedbackRepo{db: db} }

func (r *feedbackRepo) Create(ctx context.Context, f *model.QualityFeedback) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *feedbackRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.QualityFeedback, error) {
	var f model.QualityFeedback
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&f).Error
	return &f, err
}

func (r *feedbackRepo) List(ctx context.Context) ([]model.QualityFeedback, error) {
	var feedbacks []model.QualityFeedback
	err := r.db.WithContext(ctx).
		Preload("Order.Store").
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}

func (r *feedbackRepo) ListByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]model.QualityFeedback, error) {
	var feedbacks []model.QualityFeedback
	err := r.db.WithContext(ctx).Where("order_id IN ?", orderIDs).Find(&feedbacks).Error
	return feedbacks, err
}
