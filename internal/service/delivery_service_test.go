package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
)

type deliveryFixture struct {
	deliveryRepo *stubDeliveryRepo
	orderRepo    *stubOrderRepo
	userRepo     *stubUserRepo
	svc          DeliveryService
}

func newDeliveryFixture() *deliveryFixture {
	f := &deliveryFixture{
		deliveryRepo: newStubDeliveryRepo(),
		orderRepo:    newStubOrderRepo(),
		userRepo:     newStubUserRepo(),
	}
	f.svc = NewDeliveryService(f.deliveryRepo, f.orderRepo, f.userRepo, nil, NewStockCache(nil))
	return f
}

func (f *deliveryFixture) addShipper(t *testing.T) *model.User {
	t.Helper()
	shipper := &model.User{ID: uuid.New(), Username: "driver1", FullName: "Driver One", Role: model.RoleShipper, Active: true}
	require.NoError(t, f.userRepo.Create(context.Background(), shipper))
	return shipper
}

func coordinatorActor() Actor {
	return Actor{UserID: uuid.New(), Role: model.RoleCoordinator}
}

func TestCreateDelivery_GroupsOpenOrders(t *testing.T) {
	f := newDeliveryFixture()
	ctx := context.Background()
	shipper := f.addShipper(t)

	first := &model.Order{StoreID: uuid.New(), Status: model.OrderWaiting}
	second := &model.Order{StoreID: uuid.New(), Status: model.OrderProcessing}
	require.NoError(t, f.orderRepo.Create(ctx, nil, first))
	require.NoError(t, f.orderRepo.Create(ctx, nil, second))

	resp, err := f.svc.Create(ctx, coordinatorActor(), dto.CreateDeliveryRequest{
		ShipperID:    shipper.ID.String(),
		DeliveryDate: "2026-09-01",
		OrderIDs:     []string{first.ID.String(), second.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryWaiting, resp.Status)
	assert.Len(t, resp.Orders, 2)

	require.NotNil(t, first.DeliveryID)
	require.NotNil(t, second.DeliveryID)
	assert.Equal(t, *first.DeliveryID, *second.DeliveryID)
}

func TestCreateDelivery_RejectsNonShipperAssignee(t *testing.T) {
	f := newDeliveryFixture()
	ctx := context.Background()
	cook := &model.User{ID: uuid.New(), Username: "cook", FullName: "Cook", Role: model.RoleKitchen, Active: true}
	require.NoError(t, f.userRepo.Create(ctx, cook))

	order := &model.Order{StoreID: uuid.New(), Status: model.OrderWaiting}
	require.NoError(t, f.orderRepo.Create(ctx, nil, order))

	_, err := f.svc.Create(ctx, coordinatorActor(), dto.CreateDeliveryRequest{
		ShipperID:    cook.ID.String(),
		DeliveryDate: "2026-09-01",
		OrderIDs:     []string{order.ID.String()},
	})
	assert.ErrorIs(t, err, apierror.ErrValidation)
}

func TestCreateDelivery_RejectsAlreadyAssignedOrder(t *testing.T) {
	f := newDeliveryFixture()
	ctx := context.Background()
	shipper := f.addShipper(t)

	other := uuid.New()
	order := &model.Order{StoreID: uuid.New(), Status: model.OrderWaiting, DeliveryID: &other}
	require.NoError(t, f.orderRepo.Create(ctx, nil, order))

	_, err := f.svc.Create(ctx, coordinatorActor(), dto.CreateDeliveryRequest{
		ShipperID:    shipper.ID.String(),
		DeliveryDate: "2026-09-01",
		OrderIDs:     []string{order.ID.String()},
	})
	assert.ErrorIs(t, err, apierror.ErrIllegalTransition)
}

func TestStartDelivery_FlipsDeliveryAndAllMembers(t *testing.T) {
	f := newDeliveryFixture()
	ctx := context.Background()
	shipper := f.addShipper(t)

	first := &model.Order{ID: uuid.New(), StoreID: uuid.New(), Status: model.OrderWaiting}
	second := &model.Order{ID: uuid.New(), StoreID: uuid.New(), Status: model.OrderProcessing}
	require.NoError(t, f.orderRepo.Create(ctx, nil, first))
	require.NoError(t, f.orderRepo.Create(ctx, nil, second))

	delivery := &model.Delivery{
		ShipperID:    shipper.ID,
		Status:       model.DeliveryWaiting,
		DeliveryDate: time.Now(),
		Orders:       []model.Order{*first, *second},
	}
	require.NoError(t, f.deliveryRepo.Create(ctx, nil, delivery))

	actor := Actor{UserID: shipper.ID, Role: model.RoleShipper}
	require.NoError(t, f.svc.Start(ctx, actor, delivery.ID))

	assert.Equal(t, model.DeliveryProcessing, delivery.Status)
	assert.Equal(t, model.OrderDelivering, first.Status)
	assert.Equal(t, model.OrderDelivering, second.Status)
}

func TestStartDelivery_RejectsForeignShipper(t *testing.T) {
	f := newDeliveryFixture()
	ctx := context.Background()
	shipper := f.addShipper(t)

	delivery := &model.Delivery{ShipperID: shipper.ID, Status: model.DeliveryWaiting, DeliveryDate: time.Now()}
	require.NoError(t, f.deliveryRepo.Create(ctx, nil, delivery))

	err := f.svc.Start(ctx, Actor{UserID: uuid.New(), Role: model.RoleShipper}, delivery.ID)
	assert.ErrorIs(t, err, apierror.ErrIllegalTransition)
	assert.Equal(t, model.DeliveryWaiting, delivery.Status)
}

func TestStartDelivery_TerminalMemberBlocksWholeStart(t *testing.T) {
	f := newDeliveryFixture()
	ctx := context.Background()
	shipper := f.addShipper(t)

	open := &model.Order{ID: uuid.New(), StoreID: uuid.New(), Status: model.OrderWaiting}
	canceled := &model.Order{ID: uuid.New(), StoreID: uuid.New(), Status: model.OrderCanceled}
	require.NoError(t, f.orderRepo.Create(ctx, nil, open))
	require.NoError(t, f.orderRepo.Create(ctx, nil, canceled))

	delivery := &model.Delivery{
		ShipperID:    shipper.ID,
		Status:       model.DeliveryWaiting,
		DeliveryDate: time.Now(),
		Orders:       []model.Order{*open, *canceled},
	}
	require.NoError(t, f.deliveryRepo.Create(ctx, nil, delivery))

	actor := Actor{UserID: shipper.ID, Role: model.RoleShipper}
	err := f.svc.Start(ctx, actor, delivery.ID)
	assert.ErrorIs(t, err, apierror.ErrIllegalTransition)

	// Nothing moved.
	assert.Equal(t, model.DeliveryWaiting, delivery.Status)
	assert.Equal(t, model.OrderWaiting, open.Status)
	assert.Equal(t, model.OrderCanceled, canceled.Status)
}

func TestStartDelivery_RejectsRestart(t *testing.T) {
	f := newDeliveryFixture()
	ctx := context.Background()
	shipper := f.addShipper(t)

	delivery := &model.Delivery{ShipperID: shipper.ID, Status: model.DeliveryProcessing, DeliveryDate: time.Now()}
	require.NoError(t, f.deliveryRepo.Create(ctx, nil, delivery))

	actor := Actor{UserID: shipper.ID, Role: model.RoleShipper}
	err := f.svc.Start(ctx, actor, delivery.ID)
	assert.ErrorIs(t, err, apierror.ErrIllegalTransition)
}
