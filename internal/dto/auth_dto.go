package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateUserRequest struct {
	Username string  `json:"username"  validate:"required,min=3,max=60"`
	Password string  `json:"password"  validate:"required,min=4"`
	FullName string  `json:"full_name" validate:"required,min=2,max=120"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Role     string  `json:"role"      validate:"required,oneof=admin manager kitchen coordinator shipper store warehouse"`
	StoreID  *string `json:"store_id"  validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	FullName string  `json:"full_name" validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Password string  `json:"password"  validate:"omitempty,min=4"`
	Role     string  `json:"role"      validate:"omitempty,oneof=admin manager kitchen coordinator shipper store warehouse"`
	StoreID  *string `json:"store_id"  validate:"omitempty,uuid"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email"`
	Role     string  `json:"role"`
	StoreID  *string `json:"store_id"`
	Active   bool    `json:"active"`
}
