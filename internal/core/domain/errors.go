package domain

import "errors"

// Error categories. Every specific error below unwraps to exactly one of
// these, so transport code can map a whole family with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("access forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// categorized is an error with its own message that still matches its
// category under errors.Is.
type categorized struct {
	msg      string
	category error
}

func (e *categorized) Error() string { return e.msg }
func (e *categorized) Unwrap() error { return e.category }

func newError(category error, msg string) error {
	return &categorized{msg: msg, category: category}
}

var (
	ErrMissingUserFields    = newError(ErrValidation, "email, password and role are required")
	ErrEmptyUpdate          = newError(ErrValidation, "cannot update to empty values")
	ErrInvalidRole          = newError(ErrValidation, "role must be admin or standard")
	ErrMissingCredentials   = newError(ErrValidation, "email and password are required")
	ErrInvalidOrderStatus   = newError(ErrValidation, "invalid order status")
	ErrMissingProductFields = newError(ErrValidation, "name and price are required")
	ErrMissingOrderFields   = newError(ErrValidation, "userId and products are required")
	ErrUnknownProduct       = newError(ErrValidation, "order references an unknown product")

	ErrAdminRequired = newError(ErrForbidden, "admin role required")
	ErrNotOwner      = newError(ErrForbidden, "only the account owner or an admin can do this")
	ErrRoleChange    = newError(ErrForbidden, "only an admin can change roles")

	ErrUserNotFound    = newError(ErrNotFound, "user not found")
	ErrProductNotFound = newError(ErrNotFound, "product not found")
	ErrOrderNotFound   = newError(ErrNotFound, "order not found")

	ErrUserExists = newError(ErrConflict, "user already exists")
)

// ErrInvalidCredentials is returned by login when the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")
