package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-cli/internal/application/session"
	"github.com/jhoicas/stockpro-cli/internal/domain/entity"
)

// fakePersistence almacenamiento en memoria para los tests.
type fakePersistence struct {
	token   string
	user    *entity.User
	loadErr error
	saved   bool
	cleared bool
}

func (f *fakePersistence) Load() (string, *entity.User, error) {
	return f.token, f.user, f.loadErr
}

func (f *fakePersistence) Save(token string, user entity.User) error {
	f.token = token
	u := user
	f.user = &u
	f.saved = true
	return nil
}

func (f *fakePersistence) Clear() error {
	f.token = ""
	f.user = nil
	f.cleared = true
	return nil
}

func TestStore_EstadoInicialEsLoading(t *testing.T) {
	s := session.NewStore(&fakePersistence{}, nil)
	assert.Equal(t, session.StateLoading, s.State())
}

func TestInit_ConSesionPersistida(t *testing.T) {
	p := &fakePersistence{token: "tok", user: &entity.User{Email: "ana@acme.co", FullName: "Ana"}}
	s := session.NewStore(p, nil)

	s.Init()

	assert.Equal(t, session.StateAuthenticated, s.State())
	assert.Equal(t, "tok", s.Token())
	require.NotNil(t, s.User())
	assert.Equal(t, "ana@acme.co", s.User().Email)
}

func TestInit_SinCredenciales(t *testing.T) {
	s := session.NewStore(&fakePersistence{}, nil)
	s.Init()
	assert.Equal(t, session.StateUnauthenticated, s.State())
}

func TestInit_ErrorDeLecturaDegradaANoAutenticado(t *testing.T) {
	p := &fakePersistence{loadErr: errors.New("disco corrupto")}
	s := session.NewStore(p, nil)
	s.Init()
	assert.Equal(t, session.StateUnauthenticated, s.State())
}

func TestInit_TokenSinUsuarioRecuperaIdentidadDelToken(t *testing.T) {
	p := &fakePersistence{token: "tok-solo"}
	reader := func(token string) (*entity.User, error) {
		assert.Equal(t, "tok-solo", token)
		return &entity.User{Email: "luis@acme.co", Role: "1"}, nil
	}
	s := session.NewStore(p, reader)

	s.Init()

	assert.Equal(t, session.StateAuthenticated, s.State())
	require.NotNil(t, s.User())
	assert.Equal(t, "luis@acme.co", s.User().Email)
}

func TestInit_TokenSinUsuarioNiLectorQuedaNoAutenticado(t *testing.T) {
	s := session.NewStore(&fakePersistence{token: "tok"}, nil)
	s.Init()
	assert.Equal(t, session.StateUnauthenticated, s.State())
}

func TestSetSession_PersisteYActiva(t *testing.T) {
	p := &fakePersistence{}
	s := session.NewStore(p, nil)
	s.Init()

	err := s.SetSession("nuevo-token", entity.User{Email: "ana@acme.co"})

	require.NoError(t, err)
	assert.True(t, p.saved)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "nuevo-token", s.Token())
}

func TestClear_SiempreTerminaNoAutenticado(t *testing.T) {
	// Logout seguido de cualquier consulta de sesión debe dar no-autenticado,
	// sin importar el contenido previo.
	p := &fakePersistence{token: "tok", user: &entity.User{Email: "ana@acme.co"}}
	s := session.NewStore(p, nil)
	s.Init()
	require.True(t, s.IsAuthenticated())

	require.NoError(t, s.Clear())

	assert.True(t, p.cleared)
	assert.Equal(t, session.StateUnauthenticated, s.State())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestUser_DevuelveCopia(t *testing.T) {
	p := &fakePersistence{token: "tok", user: &entity.User{Email: "ana@acme.co"}}
	s := session.NewStore(p, nil)
	s.Init()

	u := s.User()
	u.Email = "otro@acme.co"

	assert.Equal(t, "ana@acme.co", s.User().Email, "mutar la copia no debe tocar el store")
}
