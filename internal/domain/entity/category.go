package entity

import "time"

// Category agrupa productos del catálogo (plantas, macetas, sustratos...).
type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryPatch actualización parcial de una categoría.
type CategoryPatch struct {
	Name        Optional[string]
	Description Optional[string] // anulable
}

// IsEmpty indica que no hay ningún campo que actualizar.
func (p CategoryPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Description.Set
}
