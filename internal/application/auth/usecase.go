package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stockpro-cli/internal/application/dto"
	"github.com/jhoicas/stockpro-cli/internal/application/session"
	"github.com/jhoicas/stockpro-cli/internal/domain"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
)

// AuthUseCase casos de uso de autenticación: login, registro y logout.
// Los errores de validación se detectan antes de cualquier llamada de red.
type AuthUseCase struct {
	gateway repository.AuthGateway
	session *session.Store
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(gateway repository.AuthGateway, sess *session.Store) *AuthUseCase {
	return &AuthUseCase{gateway: gateway, session: sess}
}

// Login valida las credenciales localmente, llama al backend y, si éste emite
// token, persiste y activa la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*entity.User, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y contraseña son obligatorios", domain.ErrInvalidInput)
	}

	res, err := uc.gateway.Login(ctx, repository.Credentials{Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: el backend no devolvió token", domain.ErrRemote)
	}
	if err := uc.session.SetSession(res.Token, res.User); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	return &res.User, nil
}

// Register valida el formulario (incluida la coincidencia de contraseñas, que
// nunca viaja al backend), registra al usuario y activa la sesión si la
// respuesta trae token. authenticated reporta si quedó sesión iniciada; un
// registro exitoso sin token exige un login aparte.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (user *entity.User, authenticated bool, err error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, false, fmt.Errorf("%w: email, contraseña y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if in.Password != in.ConfirmPassword {
		return nil, false, fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrInvalidInput)
	}

	res, err := uc.gateway.Register(ctx, repository.Registration{
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
	})
	if err != nil {
		return nil, false, err
	}
	if res.Token == "" {
		return &res.User, false, nil
	}
	if err := uc.session.SetSession(res.Token, res.User); err != nil {
		return nil, false, fmt.Errorf("guardar sesión: %w", err)
	}
	return &res.User, true, nil
}

// Logout cierra la sesión y limpia el almacenamiento persistente.
func (uc *AuthUseCase) Logout() error {
	return uc.session.Clear()
}
