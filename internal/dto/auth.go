package dto

// ── auth ──

// SignupRequest account creation. Field order is the order in which
// missing fields are reported.
type SignupRequest struct {
	Name        string `json:"name"        binding:"required"`
	Email       string `json:"email"       binding:"required"`
	Password    string `json:"password"    binding:"required"`
	ProgramCode string `json:"programCode" binding:"required"`
	Carne       string `json:"carne"       binding:"required"`
}

// LoginRequest credential check
type LoginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse issued token plus the account it belongs to
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
