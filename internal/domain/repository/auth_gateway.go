package repository

import (
	"context"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
)

// Credentials credenciales de inicio de sesión.
type Credentials struct {
	Email    string
	Password string
}

// Registration datos de registro. La confirmación de contraseña se valida en
// el caso de uso y nunca viaja al backend.
type Registration struct {
	Email    string
	Password string
	FullName string
}

// AuthResult resultado de login o registro. Token puede venir vacío en un
// registro exitoso que exige iniciar sesión aparte.
type AuthResult struct {
	Token string
	User  entity.User
}

// AuthGateway puerto de acceso a /auth/login y /auth/register.
type AuthGateway interface {
	Login(ctx context.Context, in Credentials) (*AuthResult, error)
	Register(ctx context.Context, in Registration) (*AuthResult, error)
}
