package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	Details []OrderLineRequest `json:"details" validate:"required,min=1,dive"`
}

// ResolveOrderRequest closes out an in-transit order.
type ResolveOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=DONE DAMAGED"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type OrderFilter struct {
	Status  string `form:"status"`
	StoreID string `form:"store_id"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type OrderLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID         string              `json:"id"`
	StoreID    string              `json:"store_id"`
	StoreName  string              `json:"store_name"`
	Status     string              `json:"status"`
	DeliveryID *string             `json:"delivery_id"`
	Total      decimal.Decimal     `json:"total"`
	Details    []OrderLineResponse `json:"details"`
	CreatedAt  string              `json:"created_at"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
