package entities

import "time"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleOwner UserRole = "owner"
	RoleStaff UserRole = "staff"
)

// User is an operator account of a tenant. Read-only here.
type User struct {
	ID        string    `json:"id" validate:"required"`
	TenantID  string    `json:"tenant_id" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Role      UserRole  `json:"role" validate:"oneof=admin owner staff"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}
