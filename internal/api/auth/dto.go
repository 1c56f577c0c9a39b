package auth

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Ada Lovelace"`
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required" example:"ada@example.com"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
