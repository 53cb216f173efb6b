package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents a console user role (matches user_role enum).
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// User represents an account: console staff or portal customer.
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	MobileNo     sql.NullString `db:"mobile_no"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	IsActive     bool      `db:"is_active"`

	LastLoginAt sql.NullTime   `db:"last_login_at"`
	LastLoginIP sql.NullString `db:"last_login_ip"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsStaff reports whether the user can use the admin console.
func (u *User) IsStaff() bool { return u.Role == RoleAdmin || u.Role == RoleStaff }

// FullName joins first and last name for display.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// ValidRoles returns the roles self-registration may choose.
func ValidRoles() []Role {
	return []Role{RoleCustomer}
}
