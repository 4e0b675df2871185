// Package session mantiene la identidad autenticada del proceso. Existe a lo
// sumo una sesión a la vez; el Store se pasa explícitamente a quien necesita
// identidad en lugar de usar estado global ambiente.
package session

import (
	"sync"

	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
)

// State estado del ciclo de vida de la sesión.
type State int

const (
	// StateLoading estado inicial, hasta resolver las credenciales persistidas.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

// Persistence puerto de almacenamiento de la sesión (token + usuario bajo
// claves fijas). Implementado por localstore.
type Persistence interface {
	Load() (token string, user *entity.User, err error)
	Save(token string, user entity.User) error
	Clear() error
}

// IdentityReader recupera la identidad de presentación desde un token cuando
// el registro de usuario persistido falta. Nunca decide validez del token;
// eso sigue siendo asunto exclusivo del backend.
type IdentityReader func(token string) (*entity.User, error)

// Store sesión del proceso, segura para uso concurrente.
type Store struct {
	mu       sync.RWMutex
	state    State
	token    string
	user     *entity.User
	persist  Persistence
	identity IdentityReader
}

// NewStore crea el store en estado Loading. identity puede ser nil.
func NewStore(persist Persistence, identity IdentityReader) *Store {
	return &Store{state: StateLoading, persist: persist, identity: identity}
}

// Init resuelve las credenciales persistidas y transiciona
// Loading -> Authenticated o Loading -> Unauthenticated. Un error de lectura
// del almacenamiento degrada a Unauthenticated: la sesión se recupera con un
// nuevo login, nunca es fatal.
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, user, err := s.persist.Load()
	if err != nil || token == "" {
		s.state = StateUnauthenticated
		return
	}
	if user == nil && s.identity != nil {
		// Archivo con token pero sin registro de usuario: recuperar la
		// identidad de presentación desde los claims del token.
		user, _ = s.identity(token)
	}
	if user == nil {
		s.state = StateUnauthenticated
		return
	}
	s.token = token
	s.user = user
	s.state = StateAuthenticated
}

// SetSession persiste y activa una sesión tras login o registro exitoso.
func (s *Store) SetSession(token string, user entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist.Save(token, user); err != nil {
		return err
	}
	s.token = token
	u := user
	s.user = &u
	s.state = StateAuthenticated
	return nil
}

// Clear cierra la sesión: limpia el almacenamiento persistente y transiciona
// a Unauthenticated sin importar el contenido previo.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.persist.Clear()
	s.token = ""
	s.user = nil
	s.state = StateUnauthenticated
	return err
}

// State devuelve el estado actual.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reporta si hay una sesión activa.
func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Token devuelve el bearer token actual, o vacío. Satisface rest.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User devuelve una copia del usuario autenticado, o nil.
func (s *Store) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}
