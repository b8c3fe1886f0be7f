package domain

// Claims is the verified payload of an access token. It lives for one
// request and is never persisted.
type Claims struct {
	UserID string
	Email  string
	Role   Role
	// ThisEmail is the legacy email claim older tokens carry next to Email.
	ThisEmail string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Claims) IsAdmin() bool { return c.Role == RoleAdmin }

// Identifies reports whether target names the caller through any of its
// identity signals. All three are checked independently.
func (c Claims) Identifies(target string) bool {
	if target == "" {
		return false
	}
	return (c.UserID != "" && c.UserID == target) ||
		(c.Email != "" && c.Email == target) ||
		(c.ThisEmail != "" && c.ThisEmail == target)
}

// ClaimsFor builds the token claims for a stored user.
func ClaimsFor(u *User) Claims {
	return Claims{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		ThisEmail: u.Email,
	}
}
