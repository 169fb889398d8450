package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
	"github.com/Kitchen-Control/CentralKitchen/internal/repository"
	"github.com/Kitchen-Control/CentralKitchen/internal/rules"
)

type FeedbackService interface {
	// EligibleOrders lists the actor store's DONE orders that have no
	// feedback yet.
	EligibleOrders(ctx context.Context, actor Actor) ([]dto.OrderResponse, error)
	// Submit records one rating per order. A second submission for the same
	// order fails with ErrDuplicateFeedback regardless of who raced whom.
	Submit(ctx context.Context, actor Actor, req dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error)
	List(ctx context.Context) ([]dto.FeedbackResponse, error)
}

type feedbackService struct {
	repo      repository.FeedbackRepository
	orderRepo repository.OrderRepository
}

func NewFeedbackService(repo repository.FeedbackRepository, orderRepo repository.OrderRepository) FeedbackService {
	return &feedbackService{repo: repo, orderRepo: orderRepo}
}

func (s *feedbackService) EligibleOrders(ctx context.Context, actor Actor) ([]dto.OrderResponse, error) {
	if actor.StoreID == nil {
		return nil, fmt.Errorf("%w: actor has no store", apierror.ErrValidation)
	}

	orders, err := s.orderRepo.ListByStore(ctx, *actor.StoreID)
	if err != nil {
		return nil, err
	}
	orderIDs := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}
	feedbacks, err := s.repo.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	var eligible []dto.OrderResponse
	for i := range orders {
		if rules.FeedbackEligible(orders[i], *actor.StoreID, feedbacks) {
			eligible = append(eligible, orderToResponse(&orders[i]))
		}
	}
	return eligible, nil
}

func (s *feedbackService) Submit(ctx context.Context, actor Actor, req dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	if actor.StoreID == nil {
		return nil, fmt.Errorf("%w: actor has no store", apierror.ErrValidation)
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", apierror.ErrValidation)
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order_id", apierror.ErrValidation)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", apierror.ErrNotFound, req.OrderID)
	}
	if order.StoreID != *actor.StoreID {
		return nil, fmt.Errorf("%w: order %s", apierror.ErrNotFound, req.OrderID)
	}
	if order.Status != model.OrderDone {
		return nil, fmt.Errorf("%w: order %s is %s, feedback requires DONE", apierror.ErrValidation, req.OrderID, order.Status)
	}
	if _, err := s.repo.FindByOrderID(ctx, orderID); err == nil {
		return nil, fmt.Errorf("%w: order %s", apierror.ErrDuplicateFeedback, req.OrderID)
	}

	feedback := &model.QualityFeedback{
		OrderID: orderID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		// The unique index catches the race the existence check missed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: order %s", apierror.ErrDuplicateFeedback, req.OrderID)
		}
		return nil, err
	}

	feedback.Order = order
	resp := feedbackToResponse(feedback)
	return &resp, nil
}

func (s *feedbackService) List(ctx context.Context) ([]dto.FeedbackResponse, error) {
	feedbacks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FeedbackResponse, len(feedbacks))
	for i := range feedbacks {
		resp[i] = feedbackToResponse(&feedbacks[i])
	}
	return resp, nil
}

func feedbackToResponse(f *model.QualityFeedback) dto.FeedbackResponse {
	storeName := ""
	if f.Order != nil && f.Order.Store != nil {
		storeName = f.Order.Store.Name
	}
	return dto.FeedbackResponse{
		ID:        f.ID.String(),
		OrderID:   f.OrderID.String(),
		StoreName: storeName,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
