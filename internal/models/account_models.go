package models

import "time"

// Role defines the staff roles. The role decides which status edges an
// actor may drive on an order.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleWaiter  Role = "MOZO"
	RoleKitchen Role = "COCINA"
)

// IsValidRole checks if the provided string is a valid Role.
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleAdmin, RoleWaiter, RoleKitchen:
		return true
	default:
		return false
	}
}

// Account represents a staff login. PasswordHash is never serialized.
// Accounts referenced by historical orders are deactivated instead of
// deleted so the denormalized creator data stays resolvable.
type Account struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Role         Role      `json:"role" db:"role"`
	Active       bool      `json:"active" db:"active"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Actor identifies the authenticated staff member performing an operation.
// It is built from the JWT claims by the auth middleware and passed
// explicitly into services; there is no ambient session state.
type Actor struct {
	AccountID int64
	Email     string
	Role      Role
}
