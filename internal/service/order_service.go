package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
	"github.com/Kitchen-Control/CentralKitchen/internal/repository"
	"github.com/Kitchen-Control/CentralKitchen/internal/rules"
	"github.com/Kitchen-Control/CentralKitchen/internal/worker"
)

type OrderService interface {
	// Create places a WAITING order for the actor's store. Every line is
	// checked against current availability; any shortfall rejects the whole
	// order with no mutation.
	Create(ctx context.Context, actor Actor, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, actor Actor, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	// Accept moves a WAITING order into PROCESSING (coordinator).
	Accept(ctx context.Context, actor Actor, id uuid.UUID) error
	// Cancel voids a WAITING order. Only the owning store (or admin).
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) error
	// Resolve closes out an in-transit order as DONE or DAMAGED and rolls
	// the parent delivery up to DONE when it was the last open member.
	Resolve(ctx context.Context, actor Actor, id uuid.UUID, status string) error
}

type orderService struct {
	repo          repository.OrderRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	deliveryRepo  repository.DeliveryRepository
	storeRepo     repository.StoreRepository
	dispatcher    *worker.Dispatcher
	cache         *StockCache
}

func NewOrderService(
	repo repository.OrderRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	deliveryRepo repository.DeliveryRepository,
	storeRepo repository.StoreRepository,
	dispatcher *worker.Dispatcher,
	cache *StockCache,
) OrderService {
	return &orderService{
		repo:          repo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		deliveryRepo:  deliveryRepo,
		storeRepo:     storeRepo,
		dispatcher:    dispatcher,
		cache:         cache,
	}
}

func (s *orderService) Create(ctx context.Context, actor Actor, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if actor.StoreID == nil {
		return nil, fmt.Errorf("%w: actor has no store", apierror.ErrValidation)
	}

	// Fresh availability snapshot — the cache is for reads, never for the
	// placement guard.
	lots, err := s.inventoryRepo.ListLots(ctx)
	if err != nil {
		return nil, err
	}
	reserving, err := s.repo.ListReserving(ctx, reservingStatusList())
	if err != nil {
		return nil, err
	}
	avail := rules.AvailableStockMap(lots, reserving)

	// Pre-flight validation outside the transaction.
	type resolvedLine struct {
		product  *model.Product
		quantity int
	}
	resolved := make([]resolvedLine, 0, len(req.Details))
	requested := make(map[uuid.UUID]int)
	for _, line := range req.Details {
		pid, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product_id %s", apierror.ErrValidation, line.ProductID)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", apierror.ErrValidation)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, line.ProductID)
		}
		if !p.Active || p.Type != model.ProductFinished {
			return nil, fmt.Errorf("%w: product %s is not orderable", apierror.ErrValidation, p.Name)
		}
		requested[pid] += line.Quantity
		if requested[pid] > avail[pid] {
			return nil, fmt.Errorf("%w: insufficient stock for %s (available %d, requested %d)",
				apierror.ErrValidation, p.Name, avail[pid], requested[pid])
		}
		resolved = append(resolved, resolvedLine{product: p, quantity: line.Quantity})
	}

	order := model.Order{
		StoreID: *actor.StoreID,
		Status:  model.OrderWaiting,
	}
	for _, r := range resolved {
		order.Details = append(order.Details, model.OrderDetail{
			ProductID: r.product.ID,
			Quantity:  r.quantity,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &order)
	})
	if txErr != nil {
		return nil, txErr
	}

	productIDs := make([]uuid.UUID, 0, len(requested))
	for pid := range requested {
		productIDs = append(productIDs, pid)
	}
	s.cache.Invalidate(ctx, productIDs...)

	// Re-attach products for the response; Create does not preload.
	for i, r := range resolved {
		order.Details[i].Product = r.product
	}
	resp := orderToResponse(&order)
	return &resp, nil
}

func (s *orderService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", apierror.ErrNotFound, id)
	}
	if actor.Role == model.RoleStore && (actor.StoreID == nil || *actor.StoreID != order.StoreID) {
		return nil, fmt.Errorf("%w: order %s", apierror.ErrNotFound, id)
	}
	resp := orderToResponse(order)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, actor Actor, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	// Store users only ever see their own orders.
	if actor.Role == model.RoleStore {
		if actor.StoreID == nil {
			return nil, fmt.Errorf("%w: actor has no store", apierror.ErrValidation)
		}
		filter.StoreID = actor.StoreID.String()
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		data[i] = orderToResponse(&orders[i])
	}
	return &dto.OrderListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *orderService) Accept(ctx context.Context, actor Actor, id uuid.UUID) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: order %s", apierror.ErrNotFound, id)
	}
	if err := rules.CanTransitionOrder(actor.Role, order.Status, model.OrderProcessing); err != nil {
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateStatusTx(tx, id, model.OrderProcessing)
	})
}

func (s *orderService) Cancel(ctx context.Context, actor Actor, id uuid.UUID) error {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: order %s", apierror.ErrNotFound, id)
	}
	if actor.Role == model.RoleStore && (actor.StoreID == nil || *actor.StoreID != order.StoreID) {
		return fmt.Errorf("%w: order %s belongs to another store", apierror.ErrIllegalTransition, id)
	}
	if err := rules.CanTransitionOrder(actor.Role, order.Status, model.OrderCanceled); err != nil {
		return err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateStatusTx(tx, id, model.OrderCanceled)
	})
	if txErr != nil {
		return txErr
	}

	// The canceled order releases its reservation.
	productIDs := make([]uuid.UUID, 0, len(order.Details))
	for _, d := range order.Details {
		productIDs = append(productIDs, d.ProductID)
	}
	s.cache.Invalidate(ctx, productIDs...)
	return nil
}

func (s *orderService) Resolve(ctx context.Context, actor Actor, id uuid.UUID, status string) error {
	if status != model.OrderDone && status != model.OrderDamaged {
		return fmt.Errorf("%w: resolution must be DONE or DAMAGED", apierror.ErrValidation)
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: order %s", apierror.ErrNotFound, id)
	}
	if err := rules.CanTransitionOrder(actor.Role, order.Status, status); err != nil {
		return err
	}

	// Decide the rollup before the transaction: the delivery closes when
	// every sibling is already terminal and this order is about to be.
	rollupDelivery := false
	if order.DeliveryID != nil {
		siblings, err := s.repo.ListByDelivery(ctx, *order.DeliveryID)
		if err != nil {
			return err
		}
		rollupDelivery = true
		for _, sib := range siblings {
			if sib.ID == order.ID {
				continue
			}
			if !rules.OrderTerminal(sib.Status) {
				rollupDelivery = false
				break
			}
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusTx(tx, id, status); err != nil {
			return err
		}
		if rollupDelivery {
			return s.deliveryRepo.UpdateStatusTx(tx, *order.DeliveryID, model.DeliveryDone)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.notifyStoreResolution(ctx, order, status)
	return nil
}

// notifyStoreResolution enqueues the resolution email to the store. Best
// effort, never blocks the mutation.
func (s *orderService) notifyStoreResolution(ctx context.Context, order *model.Order, status string) {
	if s.dispatcher == nil {
		return
	}
	store := order.Store
	if store == nil {
		loaded, err := s.storeRepo.FindByID(ctx, order.StoreID)
		if err != nil {
			return
		}
		store = loaded
	}
	if store.Email == nil || *store.Email == "" {
		return
	}

	subject := "Your order has been delivered"
	body := fmt.Sprintf("Order %s was delivered in full.", order.ID)
	if status == model.OrderDamaged {
		subject = "Your order arrived damaged"
		body = fmt.Sprintf("Order %s was marked damaged on delivery. The kitchen will follow up.", order.ID)
	}
	_ = s.dispatcher.EnqueueNotification(ctx, worker.NotificationJobPayload{
		ToEmail: *store.Email,
		Subject: subject,
		Body:    body,
	})
}

func orderToResponse(o *model.Order) dto.OrderResponse {
	storeName := ""
	if o.Store != nil {
		storeName = o.Store.Name
	}
	var deliveryID *string
	if o.DeliveryID != nil {
		s := o.DeliveryID.String()
		deliveryID = &s
	}

	total := decimal.Zero
	details := make([]dto.OrderLineResponse, len(o.Details))
	for i, d := range o.Details {
		name, unit := "", ""
		price := decimal.Zero
		if d.Product != nil {
			name, unit, price = d.Product.Name, d.Product.Unit, d.Product.Price
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(d.Quantity)))
		total = total.Add(subtotal)
		details[i] = dto.OrderLineResponse{
			ProductID:   d.ProductID.String(),
			ProductName: name,
			Unit:        unit,
			Quantity:    d.Quantity,
			Price:       price,
			Subtotal:    subtotal,
		}
	}

	return dto.OrderResponse{
		ID:         o.ID.String(),
		StoreID:    o.StoreID.String(),
		StoreName:  storeName,
		Status:     o.Status,
		DeliveryID: deliveryID,
		Total:      total,
		Details:    details,
		CreatedAt:  o.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
