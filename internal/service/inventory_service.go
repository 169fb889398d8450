package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
	"github.com/Kitchen-Control/CentralKitchen/internal/repository"
	"github.com/Kitchen-Control/CentralKitchen/internal/rules"
)

type InventoryService interface {
	// AvailableStock is physical lot quantity minus quantity reserved by
	// unfulfilled orders, clamped at zero. Goes through the Redis cache.
	AvailableStock(ctx context.Context, productID uuid.UUID) (int, error)
	// Marketplace lists active finished products with availability, for
	// store users composing orders.
	Marketplace(ctx context.Context) ([]dto.MarketplaceItem, error)
	ListLots(ctx context.Context) ([]dto.LotResponse, error)
	PendingImports(ctx context.Context) ([]dto.PendingImportResponse, error)
	// ApproveImport moves a finished production batch into an inventory lot
	// exactly once. Re-approval of the same batch is a no-op.
	ApproveImport(ctx context.Context, actor Actor, batchID uuid.UUID) error
	// Dispose zeroes an expired lot and records the write-off. Idempotent:
	// a lot already at zero is left untouched.
	Dispose(ctx context.Context, actor Actor, lotID uuid.UUID) error
	// Procure records a raw-material purchase intake: a new lot plus its
	// IMPORT transaction.
	Procure(ctx context.Context, actor Actor, req dto.ProcureRequest) (*dto.LotResponse, error)
	ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionResponse, int64, error)
}

type inventoryService struct {
	repo           repository.InventoryRepository
	productionRepo repository.ProductionRepository
	productRepo    repository.ProductRepository
	orderRepo      repository.OrderRepository
	cache          *StockCache
}

func NewInventoryService(
	repo repository.InventoryRepository,
	productionRepo repository.ProductionRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	cache *StockCache,
) InventoryService {
	return &inventoryService{
		repo:           repo,
		productionRepo: productionRepo,
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		cache:          cache,
	}
}

// reservingStatusList flattens rules.ReservingStatuses for repository queries.
func reservingStatusList() []string {
	statuses := make([]string, 0, len(rules.ReservingStatuses))
	for s := range rules.ReservingStatuses {
		statuses = append(statuses, s)
	}
	return statuses
}

func (s *inventoryService) AvailableStock(ctx context.Context, productID uuid.UUID) (int, error) {
	if avail, ok := s.cache.Get(ctx, productID); ok {
		return avail, nil
	}

	lots, err := s.repo.ListLotsByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	orders, err := s.orderRepo.ListReserving(ctx, reservingStatusList())
	if err != nil {
		return 0, err
	}

	avail := rules.AvailableStock(productID, lots, orders)
	s.cache.Set(ctx, productID, avail)
	return avail, nil
}

func (s *inventoryService) Marketplace(ctx context.Context) ([]dto.MarketplaceItem, error) {
	products, err := s.productRepo.ListByType(ctx, model.ProductFinished)
	if err != nil {
		return nil, err
	}
	lots, err := s.repo.ListLots(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListReserving(ctx, reservingStatusList())
	if err != nil {
		return nil, err
	}

	avail := rules.AvailableStockMap(lots, orders)
	items := make([]dto.MarketplaceItem, len(products))
	for i := range products {
		items[i] = dto.MarketplaceItem{
			ProductResponse: productToResponse(&products[i]),
			AvailableStock:  avail[products[i].ID],
		}
	}
	return items, nil
}

func (s *inventoryService) ListLots(ctx context.Context) ([]dto.LotResponse, error) {
	lots, err := s.repo.ListLots(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	resp := make([]dto.LotResponse, len(lots))
	for i := range lots {
		resp[i] = lotToResponse(&lots[i], now)
	}
	return resp, nil
}

func (s *inventoryService) PendingImports(ctx context.Context) ([]dto.PendingImportResponse, error) {
	batches, err := s.productionRepo.ListFinishedProductionBatches(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.repo.ListImportTransactions(ctx)
	if err != nil {
		return nil, err
	}

	pending := rules.PendingImports(batches, txs)
	resp := make([]dto.PendingImportResponse, len(pending))
	for i, b := range pending {
		name := ""
		if b.Product != nil {
			name = b.Product.Name
		}
		resp[i] = dto.PendingImportResponse{
			BatchID:     b.ID.String(),
			BatchCode:   b.Code,
			ProductID:   b.ProductID.String(),
			ProductName: name,
			Quantity:    b.Quantity,
			ExpiryDate:  b.ExpiryDate.Format("2006-01-02"),
		}
	}
	return resp, nil
}

func (s *inventoryService) ApproveImport(ctx context.Context, actor Actor, batchID uuid.UUID) error {
	if !rules.Allowed(actor.Role, rules.CapApproveImport) {
		return fmt.Errorf("%w: role %s may not approve imports", apierror.ErrIllegalTransition, actor.Role)
	}

	batch, err := s.productionRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return fmt.Errorf("%w: batch %s", apierror.ErrNotFound, batchID)
	}
	if batch.Status != model.BatchDone || batch.Type != model.BatchTypeProduction {
		return fmt.Errorf("%w: batch %s is not a finished production batch", apierror.ErrIllegalTransition, batchID)
	}

	// Idempotence pre-check. The partial unique index on the IMPORT ledger
	// closes the race two concurrent approvals could slip through.
	imported, err := s.repo.HasImportForBatch(ctx, batchID)
	if err != nil {
		return err
	}
	if imported {
		return nil
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		lot := &model.InventoryLot{
			ProductID:  batch.ProductID,
			BatchID:    &batch.ID,
			BatchCode:  batch.Code,
			Quantity:   batch.Quantity,
			ExpiryDate: batch.ExpiryDate,
		}
		if err := s.repo.CreateLotTx(tx, lot); err != nil {
			return err
		}

		importTx := &model.InventoryTransaction{
			LotID:     &lot.ID,
			BatchID:   &batch.ID,
			ProductID: batch.ProductID,
			Type:      model.TxImport,
			Quantity:  batch.Quantity,
			Reference: fmt.Sprintf("import batch %s", batch.Code),
		}
		return s.repo.CreateTransactionTx(tx, importTx)
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent approval. The whole transaction
			// rolled back, the winner's import stands.
			return nil
		}
		return txErr
	}

	s.cache.Invalidate(ctx, batch.ProductID)
	return nil
}

func (s *inventoryService) Dispose(ctx context.Context, actor Actor, lotID uuid.UUID) error {
	if !rules.Allowed(actor.Role, rules.CapDisposeStock) {
		return fmt.Errorf("%w: role %s may not dispose stock", apierror.ErrIllegalTransition, actor.Role)
	}

	lot, err := s.repo.FindLotByID(ctx, lotID)
	if err != nil {
		return fmt.Errorf("%w: lot %s", apierror.ErrNotFound, lotID)
	}

	if lot.Quantity <= 0 {
		return nil // already disposed
	}
	if !rules.DisposalEligible(*lot, time.Now()) {
		return fmt.Errorf("%w: lot %s has not expired", apierror.ErrValidation, lotID)
	}

	qty := lot.Quantity
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ZeroLotTx(tx, lot.ID); err != nil {
			return err
		}
		exportTx := &model.InventoryTransaction{
			LotID:     &lot.ID,
			BatchID:   lot.BatchID,
			ProductID: lot.ProductID,
			Type:      model.TxExport,
			Quantity:  qty,
			Reference: fmt.Sprintf("disposal of expired lot %s", lot.BatchCode),
		}
		return s.repo.CreateTransactionTx(tx, exportTx)
	})
	if txErr != nil {
		return txErr
	}
	s.cache.Invalidate(ctx, lot.ProductID)
	return nil
}

func (s *inventoryService) Procure(ctx context.Context, actor Actor, req dto.ProcureRequest) (*dto.LotResponse, error) {
	if !rules.Allowed(actor.Role, rules.CapProcureStock) {
		return nil, fmt.Errorf("%w: role %s may not procure stock", apierror.ErrIllegalTransition, actor.Role)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product_id", apierror.ErrValidation)
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, req.ProductID)
	}
	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expiry_date", apierror.ErrValidation)
	}

	lot := &model.InventoryLot{
		ProductID:  productID,
		BatchCode:  req.BatchCode,
		Quantity:   req.Quantity,
		ExpiryDate: expiry,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateLotTx(tx, lot); err != nil {
			return err
		}
		importTx := &model.InventoryTransaction{
			LotID:     &lot.ID,
			ProductID: productID,
			Type:      model.TxImport,
			Quantity:  req.Quantity,
			Reference: req.Reference,
		}
		return s.repo.CreateTransactionTx(tx, importTx)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.cache.Invalidate(ctx, productID)

	lot.Product = product
	resp := lotToResponse(lot, time.Now())
	return &resp, nil
}

func (s *inventoryService) ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	txs, total, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.TransactionResponse, len(txs))
	for i := range txs {
		resp[i] = transactionToResponse(&txs[i])
	}
	return resp, total, nil
}

func lotToResponse(lot *model.InventoryLot, now time.Time) dto.LotResponse {
	name, unit := "", ""
	if lot.Product != nil {
		name, unit = lot.Product.Name, lot.Product.Unit
	}
	return dto.LotResponse{
		ID:           lot.ID.String(),
		ProductID:    lot.ProductID.String(),
		ProductName:  name,
		Unit:         unit,
		BatchCode:    lot.BatchCode,
		Quantity:     lot.Quantity,
		ExpiryDate:   lot.ExpiryDate.Format("2006-01-02"),
		ExpiryStatus: rules.ExpiryStatusOf(*lot, now),
	}
}

func transactionToResponse(t *model.InventoryTransaction) dto.TransactionResponse {
	name := ""
	if t.Product != nil {
		name = t.Product.Name
	}
	var lotID, batchID *string
	if t.LotID != nil {
		s := t.LotID.String()
		lotID = &s
	}
	if t.BatchID != nil {
		s := t.BatchID.String()
		batchID = &s
	}
	return dto.TransactionResponse{
		ID:          t.ID.String(),
		LotID:       lotID,
		BatchID:     batchID,
		ProductID:   t.ProductID.String(),
		ProductName: name,
		Type:        t.Type,
		Quantity:    t.Quantity,
		Reference:   t.Reference,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}
