package entity

import "time"

// Roles de usuario del local.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User es un operador de caja con acceso al sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
