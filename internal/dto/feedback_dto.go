package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type SubmitFeedbackRequest struct {
	OrderID string  `json:"order_id" validate:"required,uuid"`
	Rating  int     `json:"rating"   validate:"required,min=1,max=5"`
	Comment *string `json:"comment"  validate:"omitempty,max=1000"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type FeedbackResponse struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	StoreName string  `json:"store_name"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	CreatedAt string  `json:"created_at"`
}
