package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

func newFeedbackFixture() (*stubFeedbackRepo, *stubOrderRepo, FeedbackService) {
	fbRepo := newStubFeedbackRepo()
	orderRepo := newStubOrderRepo()
	return fbRepo, orderRepo, NewFeedbackService(fbRepo, orderRepo)
}

func TestSubmitFeedback_Succeeds(t *testing.T) {
	_, orderRepo, svc := newFeedbackFixture()
	ctx := context.Background()
	storeID := uuid.New()

	order := &model.Order{StoreID: storeID, Status: model.OrderDone}
	require.NoError(t, orderRepo.Create(ctx, nil, order))

	comment := "arrived warm, packaging intact"
	resp, err := svc.Submit(ctx, storeActor(storeID), dto.SubmitFeedbackRequest{
		OrderID: order.ID.String(),
		Rating:  4,
		Comment: &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, order.ID.String(), resp.OrderID)
}

func TestSubmitFeedback_SecondSubmissionFails(t *testing.T) {
	fbRepo, orderRepo, svc := newFeedbackFixture()
	ctx := context.Background()
	storeID := uuid.New()

	order := &model.Order{StoreID: storeID, Status: model.OrderDone}
	require.NoError(t, orderRepo.Create(ctx, nil, order))

	_, err := svc.Submit(ctx, storeActor(storeID), dto.SubmitFeedbackRequest{
		OrderID: order.ID.String(), Rating: 5,
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, storeActor(storeID), dto.SubmitFeedbackRequest{
		OrderID: order.ID.String(), Rating: 2,
	})
	assert.ErrorIs(t, err, apierror.ErrDuplicateFeedback)

	// Exactly one record, first rating stands.
	all, listErr := fbRepo.List(ctx)
	require.NoError(t, listErr)
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].Rating)
}

func TestSubmitFeedback_RejectsMissingRating(t *testing.T) {
	_, orderRepo, svc := newFeedbackFixture()
	ctx := context.Background()
	storeID := uuid.New()

	order := &model.Order{StoreID: storeID, Status: model.OrderDone}
	require.NoError(t, orderRepo.Create(ctx, nil, order))

	_, err := svc.Submit(ctx, storeActor(storeID), dto.SubmitFeedbackRequest{
		OrderID: order.ID.String(), Rating: 0,
	})
	assert.ErrorIs(t, err, apierror.ErrValidation)

	_, err = svc.Submit(ctx, storeActor(storeID), dto.SubmitFeedbackRequest{
		OrderID: order.ID.String(), Rating: 6,
	})
	assert.ErrorIs(t, err, apierror.ErrValidation)
}

func TestSubmitFeedback_RejectsUndeliveredOrder(t *testing.T) {
	_, orderRepo, svc := newFeedbackFixture()
	ctx := context.Background()
	storeID := uuid.New()

	order := &model.Order{StoreID: storeID, Status: model.OrderDelivering}
	require.NoError(t, orderRepo.Create(ctx, nil, order))

	_, err := svc.Submit(ctx, storeActor(storeID), dto.SubmitFeedbackRequest{
		OrderID: order.ID.String(), Rating: 3,
	})
	assert.ErrorIs(t, err, apierror.ErrValidation)
}

func TestSubmitFeedback_RejectsForeignOrder(t *testing.T) {
	_, orderRepo, svc := newFeedbackFixture()
	ctx := context.Background()

	order := &model.Order{StoreID: uuid.New(), Status: model.OrderDone}
	require.NoError(t, orderRepo.Create(ctx, nil, order))

	_, err := svc.Submit(ctx, storeActor(uuid.New()), dto.SubmitFeedbackRequest{
		OrderID: order.ID.String(), Rating: 3,
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestEligibleOrders_ExcludesRatedAndUndelivered(t *testing.T) {
	_, orderRepo, svc := newFeedbackFixture()
	ctx := context.Background()
	storeID := uuid.New()

	done := &model.Order{StoreID: storeID, Status: model.OrderDone}
	rated := &model.Order{StoreID: storeID, Status: model.OrderDone}
	waiting := &model.Order{StoreID: storeID, Status: model.OrderWaiting}
	require.NoError(t, orderRepo.Create(ctx, nil, done))
	require.NoError(t, orderRepo.Create(ctx, nil, rated))
	require.NoError(t, orderRepo.Create(ctx, nil, waiting))

	actor := storeActor(storeID)
	_, err := svc.Submit(ctx, actor, dto.SubmitFeedbackRequest{OrderID: rated.ID.String(), Rating: 5})
	require.NoError(t, err)

	eligible, err := svc.EligibleOrders(ctx, actor)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, done.ID.String(), eligible[0].ID)
}
