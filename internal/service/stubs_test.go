package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
	"github.com/Kitchen-Control/CentralKitchen/internal/repository"
)

var errStubNotFound = errors.New("not found")

// ── Stub repositories ────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errStubNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListByType(_ context.Context, productType string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Type == productType && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = true
	}
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubInventoryRepo struct {
	lots map[uuid.UUID]*model.InventoryLot
	txs  []model.InventoryTransaction
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{lots: make(map[uuid.UUID]*model.InventoryLot)}
}

func (r *stubInventoryRepo) CreateLot(_ context.Context, lot *model.InventoryLot) error {
	if lot.ID == uuid.Nil {
		lot.ID = uuid.New()
	}
	r.lots[lot.ID] = lot
	return nil
}

func (r *stubInventoryRepo) FindLotByID(_ context.Context, id uuid.UUID) (*model.InventoryLot, error) {
	lot, ok := r.lots[id]
	if !ok {
		return nil, errStubNotFound
	}
	return lot, nil
}

func (r *stubInventoryRepo) FindLotByBatchID(_ context.Context, batchID uuid.UUID) (*model.InventoryLot, error) {
	for _, lot := range r.lots {
		if lot.BatchID != nil && *lot.BatchID == batchID {
			return lot, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubInventoryRepo) ListLots(_ context.Context) ([]model.InventoryLot, error) {
	var out []model.InventoryLot
	for _, lot := range r.lots {
		out = append(out, *lot)
	}
	return out, nil
}

func (r *stubInventoryRepo) ListLotsByProduct(_ context.Context, productID uuid.UUID) ([]model.InventoryLot, error) {
	var out []model.InventoryLot
	for _, lot := range r.lots {
		if lot.ProductID == productID {
			out = append(out, *lot)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) CreateLotTx(_ *gorm.DB, lot *model.InventoryLot) error {
	if lot.ID == uuid.Nil {
		lot.ID = uuid.New()
	}
	r.lots[lot.ID] = lot
	return nil
}

func (r *stubInventoryRepo) AdjustLotQuantityTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	lot, ok := r.lots[id]
	if !ok {
		return errStubNotFound
	}
	lot.Quantity += delta
	return nil
}

func (r *stubInventoryRepo) ZeroLotTx(_ *gorm.DB, id uuid.UUID) error {
	lot, ok := r.lots[id]
	if !ok {
		return errStubNotFound
	}
	lot.Quantity = 0
	return nil
}

func (r *stubInventoryRepo) CreateTransactionTx(_ *gorm.DB, t *model.InventoryTransaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	// Mirror the partial unique index on IMPORT per batch.
	if t.Type == model.TxImport && t.BatchID != nil {
		for _, existing := range r.txs {
			if existing.Type == model.TxImport && existing.BatchID != nil && *existing.BatchID == *t.BatchID {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	r.txs = append(r.txs, *t)
	return nil
}

func (r *stubInventoryRepo) HasImportForBatch(_ context.Context, batchID uuid.UUID) (bool, error) {
	for _, t := range r.txs {
		if t.Type == model.TxImport && t.BatchID != nil && *t.BatchID == batchID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubInventoryRepo) ListTransactions(_ context.Context, _ dto.TransactionFilter) ([]model.InventoryTransaction, int64, error) {
	return r.txs, int64(len(r.txs)), nil
}

func (r *stubInventoryRepo) ListImportTransactions(_ context.Context) ([]model.InventoryTransaction, error) {
	var out []model.InventoryTransaction
	for _, t := range r.txs {
		if t.Type == model.TxImport {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

type stubOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errStubNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		if filter.StoreID != "" && o.StoreID.String() != filter.StoreID {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.StoreID == storeID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListByDelivery(_ context.Context, deliveryID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.DeliveryID != nil && *o.DeliveryID == deliveryID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListReserving(_ context.Context, statuses []string) ([]model.Order, error) {
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []model.Order
	for _, o := range r.orders {
		if allowed[o.Status] {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return errStubNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) AssignDeliveryTx(_ *gorm.DB, orderID, deliveryID uuid.UUID) error {
	o, ok := r.orders[orderID]
	if !ok {
		return errStubNotFound
	}
	did := deliveryID
	o.DeliveryID = &did
	return nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

type stubDeliveryRepo struct {
	deliveries map[uuid.UUID]*model.Delivery
}

func newStubDeliveryRepo() *stubDeliveryRepo {
	return &stubDeliveryRepo{deliveries: make(map[uuid.UUID]*model.Delivery)}
}

func (r *stubDeliveryRepo) Create(_ context.Context, _ *gorm.DB, d *model.Delivery) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.deliveries[d.ID] = d
	return nil
}

func (r *stubDeliveryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Delivery, error) {
	d, ok := r.deliveries[id]
	if !ok {
		return nil, errStubNotFound
	}
	return d, nil
}

func (r *stubDeliveryRepo) List(_ context.Context) ([]model.Delivery, error) {
	var out []model.Delivery
	for _, d := range r.deliveries {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDeliveryRepo) ListByShipper(_ context.Context, shipperID uuid.UUID) ([]model.Delivery, error) {
	var out []model.Delivery
	for _, d := range r.deliveries {
		if d.ShipperID == shipperID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDeliveryRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	d, ok := r.deliveries[id]
	if !ok {
		return errStubNotFound
	}
	d.Status = status
	return nil
}

func (r *stubDeliveryRepo) DB() *gorm.DB { return nil }

var _ repository.DeliveryRepository = (*stubDeliveryRepo)(nil)

type stubProductionRepo struct {
	plans   map[uuid.UUID]*model.ProductionPlan
	batches map[uuid.UUID]*model.Batch
}

func newStubProductionRepo() *stubProductionRepo {
	return &stubProductionRepo{
		plans:   make(map[uuid.UUID]*model.ProductionPlan),
		batches: make(map[uuid.UUID]*model.Batch),
	}
}

func (r *stubProductionRepo) CreatePlan(_ context.Context, p *model.ProductionPlan) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.plans[p.ID] = p
	return nil
}

func (r *stubProductionRepo) FindPlanByID(_ context.Context, id uuid.UUID) (*model.ProductionPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, errStubNotFound
	}
	// Attach this plan's batches the way the GORM preload would.
	p.Batches = nil
	for _, b := range r.batches {
		if b.PlanID == id {
			p.Batches = append(p.Batches, *b)
		}
	}
	return p, nil
}

func (r *stubProductionRepo) ListPlans(_ context.Context) ([]model.ProductionPlan, error) {
	var out []model.ProductionPlan
	for _, p := range r.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductionRepo) UpdatePlanStatus(_ context.Context, id uuid.UUID, status string) error {
	p, ok := r.plans[id]
	if !ok {
		return errStubNotFound
	}
	p.Status = status
	return nil
}

func (r *stubProductionRepo) CreateBatch(_ context.Context, b *model.Batch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.batches[b.ID] = b
	return nil
}

func (r *stubProductionRepo) FindBatchByID(_ context.Context, id uuid.UUID) (*model.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, errStubNotFound
	}
	return b, nil
}

func (r *stubProductionRepo) ListBatchesByPlan(_ context.Context, planID uuid.UUID) ([]model.Batch, error) {
	var out []model.Batch
	for _, b := range r.batches {
		if b.PlanID == planID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubProductionRepo) ListFinishedProductionBatches(_ context.Context) ([]model.Batch, error) {
	var out []model.Batch
	for _, b := range r.batches {
		if b.Status == model.BatchDone && b.Type == model.BatchTypeProduction {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubProductionRepo) UpdateBatchStatus(_ context.Context, id uuid.UUID, status string) error {
	b, ok := r.batches[id]
	if !ok {
		return errStubNotFound
	}
	b.Status = status
	return nil
}

var _ repository.ProductionRepository = (*stubProductionRepo)(nil)

type stubFeedbackRepo struct {
	byOrder map[uuid.UUID]*model.QualityFeedback
}

func newStubFeedbackRepo() *stubFeedbackRepo {
	return &stubFeedbackRepo{byOrder: make(map[uuid.UUID]*model.QualityFeedback)}
}

func (r *stubFeedbackRepo) Create(_ context.Context, f *model.QualityFeedback) error {
	if _, exists := r.byOrder[f.OrderID]; exists {
		return gorm.ErrDuplicatedKey
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.byOrder[f.OrderID] = f
	return nil
}

func (r *stubFeedbackRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*model.QualityFeedback, error) {
	f, ok := r.byOrder[orderID]
	if !ok {
		return nil, errStubNotFound
	}
	return f, nil
}

func (r *stubFeedbackRepo) List(_ context.Context) ([]model.QualityFeedback, error) {
	var out []model.QualityFeedback
	for _, f := range r.byOrder {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFeedbackRepo) ListByOrderIDs(_ context.Context, orderIDs []uuid.UUID) ([]model.QualityFeedback, error) {
	var out []model.QualityFeedback
	for _, id := range orderIDs {
		if f, ok := r.byOrder[id]; ok {
			out = append(out, *f)
		}
	}
	return out, nil
}

var _ repository.FeedbackRepository = (*stubFeedbackRepo)(nil)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errStubNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active || includeInactive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == role && u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = true
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubStoreRepo struct {
	stores map[uuid.UUID]*model.Store
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{stores: make(map[uuid.UUID]*model.Store)}
}

func (r *stubStoreRepo) Create(_ context.Context, s *model.Store) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.stores[s.ID] = s
	return nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, errStubNotFound
	}
	return s, nil
}

func (r *stubStoreRepo) List(_ context.Context) ([]model.Store, error) {
	var out []model.Store
	for _, s := range r.stores {
		if s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubStoreRepo) Update(_ context.Context, s *model.Store) error {
	r.stores[s.ID] = s
	return nil
}

func (r *stubStoreRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if s, ok := r.stores[id]; ok {
		s.Active = false
	}
	return nil
}

var _ repository.StoreRepository = (*stubStoreRepo)(nil)
