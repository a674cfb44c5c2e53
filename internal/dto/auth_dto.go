package dto

// LoginRequest must match a registered account on all three fields.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=admin staff"`
}

type LoginResponse struct {
	User UserResponse `json:"user"`
}
