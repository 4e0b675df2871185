package token_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-cli/pkg/token"
)

// signToken firma un token de prueba; la firma es irrelevante para Identity,
// que no la verifica.
func signToken(t *testing.T, claims gojwt.MapClaims) string {
	t.Helper()
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("cualquier-secreto"))
	require.NoError(t, err)
	return s
}

func TestIdentity_ClaimsEstandar(t *testing.T) {
	s := signToken(t, gojwt.MapClaims{
		"email":    "ana@acme.co",
		"fullName": "Ana María",
		"role":     "Admin",
	})

	claims, err := token.Identity(s)

	require.NoError(t, err)
	assert.Equal(t, "ana@acme.co", claims.Email)
	assert.Equal(t, "Ana María", claims.FullName)
	assert.Equal(t, "Admin", claims.Role)
}

func TestIdentity_RolNumericoSeNormalizaAString(t *testing.T) {
	s := signToken(t, gojwt.MapClaims{"email": "ana@acme.co", "role": 1})

	claims, err := token.Identity(s)

	require.NoError(t, err)
	assert.Equal(t, "1", claims.Role)
}

func TestIdentity_ClavesDotNet(t *testing.T) {
	// Emisores .NET suelen usar las URIs de schemas.xmlsoap.org como claves.
	s := signToken(t, gojwt.MapClaims{
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress": "luis@acme.co",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name":         "Luis",
	})

	claims, err := token.Identity(s)

	require.NoError(t, err)
	assert.Equal(t, "luis@acme.co", claims.Email)
	assert.Equal(t, "Luis", claims.FullName)
}

func TestIdentity_SubComoFallbackDeEmail(t *testing.T) {
	s := signToken(t, gojwt.MapClaims{"sub": "ana@acme.co"})

	claims, err := token.Identity(s)

	require.NoError(t, err)
	assert.Equal(t, "ana@acme.co", claims.Email)
}

func TestIdentity_SinEmailFalla(t *testing.T) {
	s := signToken(t, gojwt.MapClaims{"fullName": "Sin Correo"})
	_, err := token.Identity(s)
	assert.Error(t, err)
}

func TestIdentity_TokenMalFormadoFalla(t *testing.T) {
	_, err := token.Identity("esto-no-es-un-jwt")
	assert.Error(t, err)
}
