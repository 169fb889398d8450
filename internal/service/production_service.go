package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kitchen-Control/CentralKitchen/internal/apierror"
	"github.com/Kitchen-Control/CentralKitchen/internal/dto"
	"github.com/Kitchen-Control/CentralKitchen/internal/model"
	"github.com/Kitchen-Control/CentralKitchen/internal/repository"
	"github.com/Kitchen-Control/CentralKitchen/internal/rules"
)

type ProductionService interface {
	CreatePlan(ctx context.Context, actor Actor, req dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context) ([]dto.PlanResponse, error)
	CompletePlan(ctx context.Context, actor Actor, id uuid.UUID) error
	// CreateBatch starts a production run under an active plan. The product
	// must be one of the plan's target lines; expiry derives from the
	// product's shelf life.
	CreateBatch(ctx context.Context, actor Actor, planID uuid.UUID, req dto.CreateBatchRequest) (*dto.BatchResponse, error)
	// CompleteBatch marks a run finished, making it eligible for warehouse
	// import approval.
	CompleteBatch(ctx context.Context, actor Actor, batchID uuid.UUID) error
}

type productionService struct {
	repo        repository.ProductionRepository
	productRepo repository.ProductRepository
}

func NewProductionService(repo repository.ProductionRepository, productRepo repository.ProductRepository) ProductionService {
	return &productionService{repo: repo, productRepo: productRepo}
}

func (s *productionService) CreatePlan(ctx context.Context, actor Actor, req dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if !rules.Allowed(actor.Role, rules.CapManagePlans) {
		return nil, fmt.Errorf("%w: role %s may not manage plans", apierror.ErrIllegalTransition, actor.Role)
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date", apierror.ErrValidation)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_date", apierror.ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", apierror.ErrValidation)
	}

	plan := model.ProductionPlan{
		StartDate: start,
		EndDate:   end,
		Status:    model.PlanProcessing,
	}
	for _, line := range req.Details {
		pid, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product_id %s", apierror.ErrValidation, line.ProductID)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, line.ProductID)
		}
		if p.Type == model.ProductRawMaterial {
			return nil, fmt.Errorf("%w: %s is a raw material, plans cover produced goods", apierror.ErrValidation, p.Name)
		}
		plan.Details = append(plan.Details, model.ProductionPlanDetail{
			ProductID:      pid,
			TargetQuantity: line.TargetQuantity,
			Product:        p,
		})
	}

	if err := s.repo.CreatePlan(ctx, &plan); err != nil {
		return nil, err
	}
	resp := planToResponse(&plan)
	return &resp, nil
}

func (s *productionService) GetPlan(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error) {
	plan, err := s.repo.FindPlanByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: plan %s", apierror.ErrNotFound, id)
	}
	resp := planToResponse(plan)
	return &resp, nil
}

func (s *productionService) ListPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PlanResponse, len(plans))
	for i := range plans {
		resp[i] = planToResponse(&plans[i])
	}
	return resp, nil
}

func (s *productionService) CompletePlan(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !rules.Allowed(actor.Role, rules.CapManagePlans) {
		return fmt.Errorf("%w: role %s may not manage plans", apierror.ErrIllegalTransition, actor.Role)
	}
	plan, err := s.repo.FindPlanByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: plan %s", apierror.ErrNotFound, id)
	}
	if plan.Status == model.PlanDone {
		return nil
	}
	// Unfinished batches keep the plan open.
	for _, b := range plan.Batches {
		if b.Status != model.BatchDone {
			return fmt.Errorf("%w: batch %s is still %s", apierror.ErrIllegalTransition, b.Code, b.Status)
		}
	}
	return s.repo.UpdatePlanStatus(ctx, id, model.PlanDone)
}

func (s *productionService) CreateBatch(ctx context.Context, actor Actor, planID uuid.UUID, req dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if !rules.Allowed(actor.Role, rules.CapRunBatches) {
		return nil, fmt.Errorf("%w: role %s may not run batches", apierror.ErrIllegalTransition, actor.Role)
	}

	plan, err := s.repo.FindPlanByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("%w: plan %s", apierror.ErrNotFound, planID)
	}
	if plan.Status != model.PlanProcessing {
		return nil, fmt.Errorf("%w: plan %s is closed", apierror.ErrIllegalTransition, planID)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product_id", apierror.ErrValidation)
	}
	planned := false
	for _, line := range plan.Details {
		if line.ProductID == productID {
			planned = true
			break
		}
	}
	if !planned {
		return nil, fmt.Errorf("%w: product %s is not on the plan", apierror.ErrValidation, req.ProductID)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", apierror.ErrNotFound, req.ProductID)
	}

	now := time.Now()
	batch := model.Batch{
		PlanID:     planID,
		ProductID:  productID,
		Code:       newBatchCode(now),
		Quantity:   req.Quantity,
		Status:     model.BatchProcessing,
		Type:       model.BatchTypeProduction,
		ExpiryDate: now.AddDate(0, 0, product.ShelfLifeDays),
		Product:    product,
	}
	if err := s.repo.CreateBatch(ctx, &batch); err != nil {
		return nil, err
	}
	resp := batchToResponse(&batch)
	return &resp, nil
}

func (s *productionService) CompleteBatch(ctx context.Context, actor Actor, batchID uuid.UUID) error {
	batch, err := s.repo.FindBatchByID(ctx, batchID)
	if err != nil {
		return fmt.Errorf("%w: batch %s", apierror.ErrNotFound, batchID)
	}
	if err := rules.CanTransitionBatch(actor.Role, batch.Status, model.BatchDone); err != nil {
		return err
	}
	return s.repo.UpdateBatchStatus(ctx, batchID, model.BatchDone)
}

// newBatchCode builds a human-scannable batch code: B-20260830-1A2B3C.
func newBatchCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("B-%s-%s", now.Format("20060102"), suffix)
}

func planToResponse(p *model.ProductionPlan) dto.PlanResponse {
	// Produced quantity per product: sum of DONE batch quantities.
	produced := make(map[uuid.UUID]int)
	for _, b := range p.Batches {
		if b.Status == model.BatchDone {
			produced[b.ProductID] += b.Quantity
		}
	}

	details := make([]dto.PlanLineResponse, len(p.Details))
	for i, line := range p.Details {
		name := ""
		if line.Product != nil {
			name = line.Product.Name
		}
		details[i] = dto.PlanLineResponse{
			ProductID:      line.ProductID.String(),
			ProductName:    name,
			TargetQuantity: line.TargetQuantity,
			ProducedQty:    produced[line.ProductID],
		}
	}
	batches := make([]dto.BatchResponse, len(p.Batches))
	for i := range p.Batches {
		batches[i] = batchToResponse(&p.Batches[i])
	}
	return dto.PlanResponse{
		ID:        p.ID.String(),
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Status:    p.Status,
		Details:   details,
		Batches:   batches,
	}
}

func batchToResponse(b *model.Batch) dto.BatchResponse {
	name := ""
	if b.Product != nil {
		name = b.Product.Name
	}
	return dto.BatchResponse{
		ID:          b.ID.String(),
		PlanID:      b.PlanID.String(),
		Code:        b.Code,
		ProductID:   b.ProductID.String(),
		ProductName: name,
		Quantity:    b.Quantity,
		Status:      b.Status,
		Type:        b.Type,
		ExpiryDate:  b.ExpiryDate.Format("2006-01-02"),
	}
}
