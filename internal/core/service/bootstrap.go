package service

import (
	"context"
	"errors"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

// EnsureAdmin provisions the bootstrap administrator. It does nothing when
// either credential is empty or when a user with that email already exists,
// so running it on every start never creates duplicates. It reports whether
// a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		s.log.Debug().Msg("admin credentials not configured, skipping bootstrap")
		return false, nil
	}

	created, err := s.insert(ctx, email, password, domain.RoleAdmin)
	if errors.Is(err, domain.ErrUserExists) {
		s.log.Debug().Str("email", email).Msg("admin already provisioned")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", email).Msg("admin provisioned")
	return true, nil
}
