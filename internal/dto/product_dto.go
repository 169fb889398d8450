package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string          `json:"name"            validate:"required,min=2,max=120"`
	Type          string          `json:"type"            validate:"required,oneof=RAW_MATERIAL SEMI_FINISHED FINISHED_PRODUCT"`
	Unit          string          `json:"unit"            validate:"required"`
	ShelfLifeDays int             `json:"shelf_life_days" validate:"min=0"`
	Price         decimal.Decimal `json:"price"           validate:"required"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"            validate:"omitempty,min=2,max=120"`
	Unit          *string          `json:"unit"`
	ShelfLifeDays *int             `json:"shelf_life_days" validate:"omitempty,min=0"`
	Price         *decimal.Decimal `json:"price"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name   string `form:"name"`
	Type   string `form:"type"`
	Active string `form:"active"` // "false" = inactive, "all" = everything, default active
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Unit          string          `json:"unit"`
	ShelfLifeDays int             `json:"shelf_life_days"`
	Price         decimal.Decimal `json:"price"`
	Active        bool            `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// MarketplaceItem is a sellable product enriched with its availability,
// served to store users placing orders.
type MarketplaceItem struct {
	ProductResponse
	AvailableStock int `json:"available_stock"`
}

// StockResponse is returned by the public availability endpoint.
type StockResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Unit           string `json:"unit"`
	AvailableStock int    `json:"available_stock"`
}
