package dto

// ─── Requests ────────────────────────────────────────────────────────────────

// ApproveImportRequest approves moving a finished production batch into
// inventory. Idempotent per batch id.
type ApproveImportRequest struct {
	BatchID string `json:"batch_id" validate:"required,uuid"`
}

// ProcureRequest records a raw-material purchase intake: creates a lot and
// its IMPORT transaction in one step.
type ProcureRequest struct {
	ProductID  string `json:"product_id"  validate:"required,uuid"`
	Quantity   int    `json:"quantity"    validate:"required,gt=0"`
	BatchCode  string `json:"batch_code"  validate:"required"`
	ExpiryDate string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	Reference  string `json:"reference"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type LotResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Unit         string `json:"unit"`
	BatchCode    string `json:"batch_code"`
	Quantity     int    `json:"quantity"`
	ExpiryDate   string `json:"expiry_date"`
	ExpiryStatus string `json:"expiry_status"` // EXPIRED | EXPIRING | OK
}

type PendingImportResponse struct {
	BatchID     string `json:"batch_id"`
	BatchCode   string `json:"batch_code"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	ExpiryDate  string `json:"expiry_date"`
}

type TransactionResponse struct {
	ID          string `json:"id"`
	LotID       *string `json:"lot_id"`
	BatchID     *string `json:"batch_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Reference   string `json:"reference"`
	CreatedAt   string `json:"created_at"`
}

type TransactionFilter struct {
	ProductID string `form:"product_id"`
	Type      string `form:"type"` // IMPORT | EXPORT | all
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}
