package ports

import (
	"context"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

// AuthService exchanges credentials for an access token.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UserListResult is one page of users.
type UserListResult struct {
	Items    []*domain.User
	Total    int64
	Page     int
	Limit    int
	LastPage int
}

// UserService exposes user account operations. Every method takes the
// caller's verified claims and enforces the authorization policy itself.
type UserService interface {
	List(ctx context.Context, claims domain.Claims, page domain.Page) (*UserListResult, error)
	Get(ctx context.Context, claims domain.Claims, target string) (*domain.User, error)
	Create(ctx context.Context, claims domain.Claims, in domain.NewUser) (*domain.User, error)
	Update(ctx context.Context, claims domain.Claims, target string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, claims domain.Claims, target string) (*domain.User, error)
}
