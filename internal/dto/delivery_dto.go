package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type CreateDeliveryRequest struct {
	ShipperID    string   `json:"shipper_id"    validate:"required,uuid"`
	DeliveryDate string   `json:"delivery_date" validate:"required,datetime=2006-01-02"`
	OrderIDs     []string `json:"order_ids"     validate:"required,min=1,dive,uuid"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type DeliveryResponse struct {
	ID           string          `json:"id"`
	ShipperID    string          `json:"shipper_id"`
	ShipperName  string          `json:"shipper_name"`
	Status       string          `json:"status"`
	DeliveryDate string          `json:"delivery_date"`
	Orders       []OrderResponse `json:"orders"`
}
