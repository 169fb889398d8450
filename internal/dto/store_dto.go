package dto

type CreateStoreRequest struct {
	Name    string  `json:"name"    validate:"required,min=2,max=120"`
	Address string  `json:"address" validate:"required"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=2,max=120"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

type StoreResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email"`
	Active  bool    `json:"active"`
}
