package entity

// User representa la identidad autenticada de la sesión. El backend no emite
// un ID propio en la respuesta de auth, así que el email actúa como subrogado.
type User struct {
	Email    string
	FullName string
	Role     string
}

// ID devuelve el identificador de la identidad (el email, ver comentario del tipo).
func (u User) ID() string { return u.Email }
