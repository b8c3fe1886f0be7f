package ports

import (
	"context"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

// UserRepository is the credential store. Lookups that match nothing return
// domain.ErrUserNotFound; inserting a taken email returns domain.ErrUserExists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateByTarget atomically applies update and returns the updated user.
	UpdateByTarget(ctx context.Context, ref domain.TargetRef, update domain.UserUpdate) (*domain.User, error)
	// DeleteByTarget atomically removes the user and returns what was removed.
	DeleteByTarget(ctx context.Context, ref domain.TargetRef) (*domain.User, error)
	List(ctx context.Context, page domain.Page) ([]*domain.User, int64, error)
}

// TokenService issues and verifies access tokens.
type TokenService interface {
	Sign(claims domain.Claims) (string, error)
	Verify(token string) (domain.Claims, error)
}

// PasswordHasher produces and checks one-way salted password hashes.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}
