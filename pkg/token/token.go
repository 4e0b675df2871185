// Package token extrae claims de presentación de un JWT ya emitido por el
// backend. La extracción NO verifica la firma: el cliente no conoce el secreto
// y la validez del token la decide exclusivamente el backend en la siguiente
// petición. Estos datos sirven solo para re-hidratar la identidad mostrada.
package token

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identidad de presentación contenida en el token.
type Claims struct {
	Email    string
	FullName string
	Role     string
}

// claves alternativas observadas según la configuración del emisor .NET
var (
	emailKeys = []string{"email", "sub", "unique_name", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"}
	nameKeys  = []string{"fullName", "name", "given_name", "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"}
	roleKeys  = []string{"role", "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"}
)

// Identity decodifica el token sin verificar firma y devuelve los claims de
// presentación. Falla solo si el token no es un JWT bien formado o no trae
// ningún claim identificable como email.
func Identity(tokenString string) (*Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("token mal formado: %w", err)
	}

	out := &Claims{
		Email:    firstString(claims, emailKeys),
		FullName: firstString(claims, nameKeys),
		Role:     firstString(claims, roleKeys),
	}
	if out.Email == "" {
		return nil, fmt.Errorf("el token no contiene claim de email")
	}
	return out, nil
}

// firstString devuelve el primer claim presente entre keys, normalizado a
// string (el backend a veces emite el rol como número).
func firstString(claims jwt.MapClaims, keys []string) string {
	for _, k := range keys {
		v, ok := claims[k]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			if val != "" {
				return val
			}
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	return ""
}
