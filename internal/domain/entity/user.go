package entity

import "time"

// Roles válidos para User. El rol no cambia después del alta.
const (
	RoleOwner  = "OWNER"
	RoleTenant = "TENANT"
)

// User representa a un propietario o inquilino.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Phone        string
	Role         string // OWNER, TENANT
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwner informa si el usuario es propietario.
func (u *User) IsOwner() bool { return u != nil && u.Role == RoleOwner }
