package domain

import "time"

// Role represents an authorization role held by a registry entry.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Identity is an account in the identity store, used only to verify credentials.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// AdminUser is an entry in the admin registry. Holding an identity is not
// enough to reach the admin area; the email must also appear here with the
// admin role.
type AdminUser struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
