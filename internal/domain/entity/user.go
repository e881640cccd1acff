package entity

import "time"

// Roles válidos para User.
const (
	RoleContador  = "contador"  // administra bodegueros y la contraseña de reportes
	RoleBodeguero = "bodeguero" // registra entradas y salidas
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre para mostrar del autor de un movimiento.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
