package entity

import "time"

// Roles válidos para Employee.
const (
	RoleAdmin     = "admin"
	RoleEncargado = "encargado"
	RoleEmpleado  = "empleado"
)

// ValidRole indica si r es uno de los roles del sistema.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleEncargado, RoleEmpleado:
		return true
	}
	return false
}

// Employee representa un empleado del vivero con acceso al sistema.
type Employee struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt; solo se carga en la consulta de login
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeePatch actualización parcial de un empleado. Password llega en texto y se hashea en el use case.
type EmployeePatch struct {
	Name     Optional[string]
	Email    Optional[string]
	Role     Optional[string]
	Password Optional[string]
}

// IsEmpty indica que no hay ningún campo que actualizar.
func (p EmployeePatch) IsEmpty() bool {
	return !p.Name.Set && !p.Email.Set && !p.Role.Set && !p.Password.Set
}
