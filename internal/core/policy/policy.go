// Package policy decides who may read or write which resource.
//
// Every function returns nil to allow, or a domain error to deny. Decisions
// depend only on the caller's claims, the raw target identifier and the
// payload; store lookups are the caller's business.
package policy

import (
	"github.com/burgerqueen/pos-api/internal/core/domain"
)

// Rule is a decision that needs nothing but the caller's claims.
type Rule func(claims domain.Claims) error

// AdminOnly allows admins and denies everyone else.
func AdminOnly(claims domain.Claims) error {
	if !claims.IsAdmin() {
		return domain.ErrAdminRequired
	}
	return nil
}

// Authenticated allows any caller holding verified claims.
func Authenticated(domain.Claims) error { return nil }

var (
	ListUsers    Rule = AdminOnly
	WriteProduct Rule = AdminOnly
	ReadOrder    Rule = Authenticated
	CreateOrder  Rule = Authenticated
	UpdateOrder  Rule = AdminOnly
	DeleteOrder  Rule = AdminOnly
)

// SelfOrAdmin allows the caller when target names them or when they are an
// admin.
func SelfOrAdmin(claims domain.Claims, target string) error {
	if claims.Identifies(target) || claims.IsAdmin() {
		return nil
	}
	return domain.ErrNotOwner
}

// ReadUser decides GET /users/:uid.
func ReadUser(claims domain.Claims, target string) error {
	return SelfOrAdmin(claims, target)
}

// DeleteUser decides DELETE /users/:uid.
func DeleteUser(claims domain.Claims, target string) error {
	return SelfOrAdmin(claims, target)
}

// CreateUser decides POST /users. The admin check runs first, then the
// required fields, so a non-admin never learns which fields were missing.
func CreateUser(claims domain.Claims, in domain.NewUser) error {
	if err := AdminOnly(claims); err != nil {
		return err
	}
	if in.Email == "" || in.Password == "" || in.Role == "" {
		return domain.ErrMissingUserFields
	}
	return nil
}

// UpdateUser decides PATCH /users/:uid. Empty payloads are rejected before
// the ownership check; a non-admin may never send a role field, even for
// their own record.
func UpdateUser(claims domain.Claims, target string, patch domain.UserPatch) error {
	if patch.IsEmpty() || patch.HasEmptyValue() {
		return domain.ErrEmptyUpdate
	}
	if err := SelfOrAdmin(claims, target); err != nil {
		return err
	}
	if patch.Role != nil && !claims.IsAdmin() {
		return domain.ErrRoleChange
	}
	return nil
}
