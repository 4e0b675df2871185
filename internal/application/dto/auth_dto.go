package dto

// LoginRequest entrada para iniciar sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest entrada para registrarse. ConfirmPassword se valida
// localmente y se descarta antes de llamar al backend.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	FullName        string `json:"fullName"`
}
