package entity

import "time"

// Roles de usuario del back-office.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario administrativo de la plataforma.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, bodeguero, vendedor
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
