package service

import (
	"context"

	"github.com/burgerqueen/pos-api/internal/core/domain"
	"github.com/burgerqueen/pos-api/internal/core/ports"
)

// AuthService implements login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(domain.ClaimsFor(user))
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
