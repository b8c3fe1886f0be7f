package domain

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// ParseRole maps a payload role onto the closed enumeration. The legacy
// value "user" is accepted as standard.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleStandard), "user":
		return RoleStandard, nil
	default:
		return "", ErrInvalidRole
	}
}

// User models an account of the point-of-sale.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// NewUser carries the raw fields of a create-user request.
type NewUser struct {
	Email    string
	Password string
	Role     string
}

// UserPatch is a partial user update. A nil field was absent from the
// payload; a non-nil empty string was sent explicitly.
type UserPatch struct {
	Email    *string
	Password *string
	Role     *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Password == nil && p.Role == nil
}

// HasEmptyValue reports whether email or password was explicitly set to "".
func (p UserPatch) HasEmptyValue() bool {
	return (p.Email != nil && *p.Email == "") || (p.Password != nil && *p.Password == "")
}

// UserUpdate is the persisted form of a patch: the password is already hashed
// and the role already parsed.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
	Role         *Role
	UpdatedAt    time.Time
}
