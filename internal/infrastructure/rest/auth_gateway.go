package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jhoicas/stockpro-cli/internal/domain"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
	"github.com/jhoicas/stockpro-cli/internal/domain/repository"
)

// AuthGateway implementa repository.AuthGateway contra /auth.
type AuthGateway struct {
	client *Client
}

// NewAuthGateway construye el gateway de autenticación.
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

// flexString acepta un valor JSON string o numérico y lo normaliza a string;
// el backend emite el rol de ambas formas según el endpoint.
type flexString string

func (f *flexString) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	return fmt.Errorf("valor inesperado para string flexible: %s", raw)
}

// authEnvelope sobre de respuesta de /auth/login y /auth/register.
type authEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Token    string     `json:"token"`
		Email    string     `json:"email"`
		FullName string     `json:"fullName"`
		Role     flexString `json:"role"`
	} `json:"data"`
}

func (e authEnvelope) result() *repository.AuthResult {
	return &repository.AuthResult{
		Token: e.Data.Token,
		User: entity.User{
			Email:    e.Data.Email,
			FullName: e.Data.FullName,
			Role:     string(e.Data.Role),
		},
	}
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Login envía POST /auth/login. Un sobre con success=false se trata como
// credenciales rechazadas aunque el estado HTTP sea 200.
func (g *AuthGateway) Login(ctx context.Context, in repository.Credentials) (*repository.AuthResult, error) {
	var envelope authEnvelope
	err := g.client.sendJSON(ctx, http.MethodPost, "/auth/login",
		loginBody{Email: in.Email, Password: in.Password}, &envelope)
	if err != nil {
		return nil, err
	}
	if !envelope.Success || envelope.Data.Token == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, orMessage(envelope.Message))
	}
	return envelope.result(), nil
}

// Register envía POST /auth/register. La confirmación de contraseña nunca
// forma parte del cuerpo. Un registro exitoso puede venir sin token; en ese
// caso el resultado trae Token vacío y el caller decide pedir login.
func (g *AuthGateway) Register(ctx context.Context, in repository.Registration) (*repository.AuthResult, error) {
	var envelope authEnvelope
	err := g.client.sendJSON(ctx, http.MethodPost, "/auth/register",
		registerBody{Email: in.Email, Password: in.Password, FullName: in.FullName}, &envelope)
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, orMessage(envelope.Message))
	}
	return envelope.result(), nil
}

func orMessage(msg string) string {
	if msg == "" {
		return "el backend rechazó la solicitud"
	}
	return msg
}
