package entity

import "time"

// Client representa un cliente del vivero.
type Client struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientPatch actualización parcial de un cliente.
type ClientPatch struct {
	Name  Optional[string]
	Email Optional[string]
}

// IsEmpty indica que no hay ningún campo que actualizar.
func (p ClientPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Email.Set
}
