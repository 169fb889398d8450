package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type PlanLineRequest struct {
	ProductID      string `json:"product_id"      validate:"required,uuid"`
	TargetQuantity int    `json:"target_quantity" validate:"required,gt=0"`
}

type CreatePlanRequest struct {
	StartDate string            `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string            `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Details   []PlanLineRequest `json:"details"    validate:"required,min=1,dive"`
}

type CreateBatchRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type PlanLineResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	TargetQuantity int    `json:"target_quantity"`
	ProducedQty    int    `json:"produced_quantity"` // sum of DONE batch quantities
}

type BatchResponse struct {
	ID          string `json:"id"`
	PlanID      string `json:"plan_id"`
	Code        string `json:"code"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
	Type        string `json:"type"`
	ExpiryDate  string `json:"expiry_date"`
}

type PlanResponse struct {
	ID        string             `json:"id"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Status    string             `json:"status"`
	Details   []PlanLineResponse `json:"details"`
	Batches   []BatchResponse    `json:"batches"`
}
