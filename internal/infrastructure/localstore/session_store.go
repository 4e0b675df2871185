// Package localstore persiste la sesión en disco, el análogo del
// localStorage del navegador: token y registro de usuario bajo claves fijas,
// borrados al cerrar sesión.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
)

const sessionFileName = "session.json"

// sessionFile forma en disco. Las claves "token" y "user" son fijas.
type sessionFile struct {
	Token string      `json:"token"`
	User  *userRecord `json:"user"`
}

type userRecord struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// SessionStore almacenamiento de sesión en un archivo. Implementa
// session.Persistence.
type SessionStore struct {
	path string
}

// NewSessionStore construye el store dentro de dir.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{path: filepath.Join(dir, sessionFileName)}
}

// Load lee la sesión persistida. Archivo ausente no es error: simplemente no
// hay sesión. Un archivo corrupto sí se reporta, para que el caller degrade.
func (s *SessionStore) Load() (string, *entity.User, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("leer sesión: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return "", nil, fmt.Errorf("sesión corrupta: %w", err)
	}
	if f.User == nil {
		return f.Token, nil, nil
	}
	return f.Token, &entity.User{
		Email:    f.User.Email,
		FullName: f.User.FullName,
		Role:     f.User.Role,
	}, nil
}

// Save escribe token y usuario. El archivo queda con permisos 0600: contiene
// un bearer token.
func (s *SessionStore) Save(token string, user entity.User) error {
	raw, err := json.MarshalIndent(sessionFile{
		Token: token,
		User: &userRecord{
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("crear carpeta de sesión: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Clear elimina el archivo de sesión; que no exista no es error.
func (s *SessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("limpiar sesión: %w", err)
	}
	return nil
}
