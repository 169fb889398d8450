package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
	"github.com/Kitchen-Control/CentralKitchen/internal/repository"
	"github.com/Kitchen-Control/CentralKitchen/internal/rules"
	"github.com/Kitchen-Control/CentralKitchen/internal/worker"
)

type DeliveryService interface {
	// Create groups open orders under a new WAITING delivery assigned to a
	// shipper. Orders already on a delivery or past PROCESSING are rejected.
	Create(ctx context.Context, actor Actor, req dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DeliveryResponse, error)
	List(ctx context.Context) ([]dto.DeliveryResponse, error)
	ListByShipper(ctx context.Context, shipperID uuid.UUID) ([]dto.DeliveryResponse, error)
	// Start flips the delivery to PROCESSING and every member order to
	// DELIVERING in one transaction. Any ineligible member fails the whole
	// start with no partial movement.
	Start(ctx context.Context, actor Actor, id uuid.UUID) error
}

type deliveryService struct {
	repo       repository.DeliveryRepository
	orderRepo  repository.OrderRepository
	userRepo   repository.UserRepository
	dispatcher *worker.Dispatcher
	cache      *StockCache
}

func NewDeliveryService(
	repo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	dispatcher *worker.Dispatcher,
	cache *StockCache,
) DeliveryService {
	return &deliveryService{
		repo:       repo,
		orderRepo:  orderRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
		cache:      cache,
	}
}

func (s *deliveryService) Create(ctx context.Context, actor Actor, req dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if !rules.Allowed(actor.Role, rules.CapCreateDelivery) {
		return nil, fmt.Errorf("%w: role %s may not create deliveries", apierror.ErrIllegalTransition, actor.Role)
	}

	shipperID, err := uuid.Parse(req.ShipperID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid shipper_id", apierror.ErrValidation)
	}
	shipper, err := s.userRepo.FindByID(ctx, shipperID)
	if err != nil || !shipper.Active {
		return nil, fmt.Errorf("%w: shipper %s", apierror.ErrNotFound, req.ShipperID)
	}
	if shipper.Role != model.RoleShipper {
		return nil, fmt.Errorf("%w: user %s is not a shipper", apierror.ErrValidation, shipper.Username)
	}
	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid delivery_date", apierror.ErrValidation)
	}

	// Pre-flight: every order must be open and unassigned.
	orders := make([]*model.Order, 0, len(req.OrderIDs))
	for _, idStr := range req.OrderIDs {
		oid, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid order id %s", apierror.ErrValidation, idStr)
		}
		order, err := s.orderRepo.FindByID(ctx, oid)
		if err != nil {
			return nil, fmt.Errorf("%w: order %s", apierror.ErrNotFound, idStr)
		}
		if order.Status != model.OrderWaiting && order.Status != model.OrderProcessing {
			return nil, fmt.Errorf("%w: order %s is %s, not open", apierror.ErrIllegalTransition, idStr, order.Status)
		}
		if order.DeliveryID != nil {
			return nil, fmt.Errorf("%w: order %s is already on a delivery", apierror.ErrIllegalTransition, idStr)
		}
		orders = append(orders, order)
	}

	delivery := model.Delivery{
		ShipperID:    shipperID,
		Status:       model.DeliveryWaiting,
		DeliveryDate: deliveryDate,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &delivery); err != nil {
			return err
		}
		for _, order := range orders {
			if err := s.orderRepo.AssignDeliveryTx(tx, order.ID, delivery.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	delivery.Shipper = shipper
	for _, o := range orders {
		did := delivery.ID
		o.DeliveryID = &did
		delivery.Orders = append(delivery.Orders, *o)
	}
	resp := deliveryToResponse(&delivery)
	return &resp, nil
}

func (s *deliveryService) Get(ctx context.Context, id uuid.UUID) (*dto.DeliveryResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: delivery %s", apierror.ErrNotFound, id)
	}
	resp := deliveryToResponse(d)
	return &resp, nil
}

func (s *deliveryService) List(ctx context.Context) ([]dto.DeliveryResponse, error) {
	deliveries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DeliveryResponse, len(deliveries))
	for i := range deliveries {
		resp[i] = deliveryToResponse(&deliveries[i])
	}
	return resp, nil
}

func (s *deliveryService) ListByShipper(ctx context.Context, shipperID uuid.UUID) ([]dto.DeliveryResponse, error) {
	deliveries, err := s.repo.ListByShipper(ctx, shipperID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DeliveryResponse, len(deliveries))
	for i := range deliveries {
		resp[i] = deliveryToResponse(&deliveries[i])
	}
	return resp, nil
}

func (s *deliveryService) Start(ctx context.Context, actor Actor, id uuid.UUID) error {
	delivery, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: delivery %s", apierror.ErrNotFound, id)
	}
	if actor.Role == model.RoleShipper && delivery.ShipperID != actor.UserID {
		return fmt.Errorf("%w: delivery %s is assigned to another shipper", apierror.ErrIllegalTransition, id)
	}
	if err := rules.CanTransitionDelivery(actor.Role, delivery.Status, model.DeliveryProcessing); err != nil {
		return err
	}
	// Every member must be movable before anything moves.
	for _, order := range delivery.Orders {
		if err := rules.CanTransitionOrder(actor.Role, order.Status, model.OrderDelivering); err != nil {
			return fmt.Errorf("order %s: %w", order.ID, err)
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusTx(tx, id, model.DeliveryProcessing); err != nil {
			return err
		}
		for _, order := range delivery.Orders {
			if err := s.orderRepo.UpdateStatusTx(tx, order.ID, model.OrderDelivering); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	// Member orders stopped reserving stock when they left PROCESSING.
	seen := make(map[uuid.UUID]bool)
	var productIDs []uuid.UUID
	for _, order := range delivery.Orders {
		for _, d := range order.Details {
			if !seen[d.ProductID] {
				seen[d.ProductID] = true
				productIDs = append(productIDs, d.ProductID)
			}
		}
	}
	s.cache.Invalidate(ctx, productIDs...)

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueManifest(ctx, worker.ManifestJobPayload{DeliveryID: id.String()})
	}
	return nil
}

func deliveryToResponse(d *model.Delivery) dto.DeliveryResponse {
	shipperName := ""
	if d.Shipper != nil {
		shipperName = d.Shipper.FullName
	}
	orders := make([]dto.OrderResponse, len(d.Orders))
	for i := range d.Orders {
		orders[i] = orderToResponse(&d.Orders[i])
	}
	return dto.DeliveryResponse{
		ID:           d.ID.String(),
		ShipperID:    d.ShipperID.String(),
		ShipperName:  shipperName,
		Status:       d.Status,
		DeliveryDate: d.DeliveryDate.Format("2006-01-02"),
		Orders:       orders,
	}
}
