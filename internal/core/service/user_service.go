package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/burgerqueen/pos-api/internal/core/domain"
	"github.com/burgerqueen/pos-api/internal/core/policy"
	"github.com/burgerqueen/pos-api/internal/core/ports"
)

// UserService implements account management on top of the credential store.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log}
}

// List returns one page of users. Admins only.
func (s *UserService) List(ctx context.Context, claims domain.Claims, page domain.Page) (*ports.UserListResult, error) {
	if err := policy.ListUsers(claims); err != nil {
		return nil, err
	}

	users, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &ports.UserListResult{
		Items:    users,
		Total:    total,
		Page:     page.Number,
		Limit:    page.Limit,
		LastPage: page.LastPage(total),
	}, nil
}

// Get returns the user named by target (id or email).
func (s *UserService) Get(ctx context.Context, claims domain.Claims, target string) (*domain.User, error) {
	if err := policy.ReadUser(claims, target); err != nil {
		return nil, err
	}

	ref, err := domain.ParseTargetRef(target)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, ref)
}

// Create registers a new account. Admins only.
func (s *UserService) Create(ctx context.Context, claims domain.Claims, in domain.NewUser) (*domain.User, error) {
	if err := policy.CreateUser(claims, in); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	created, err := s.insert(ctx, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Update applies a partial update to the user named by target.
//
// The target is looked up before the payload is validated, so an unknown
// target reports not-found even for an empty or unauthorized body.
func (s *UserService) Update(ctx context.Context, claims domain.Claims, target string, patch domain.UserPatch) (*domain.User, error) {
	ref, err := domain.ParseTargetRef(target)
	if err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, ref); err != nil {
		return nil, err
	}

	if err := policy.UpdateUser(claims, target, patch); err != nil {
		return nil, err
	}

	update := domain.UserUpdate{Email: patch.Email, UpdatedAt: time.Now().UTC()}
	if patch.Role != nil {
		role, err := domain.ParseRole(*patch.Role)
		if err != nil {
			return nil, err
		}
		update.Role = &role
	}
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = &hash
	}

	updated, err := s.repo.UpdateByTarget(ctx, ref, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", updated.ID).Str("by", claims.UserID).Msg("user updated")
	return updated, nil
}

// Delete removes the user named by target and returns the removed record.
func (s *UserService) Delete(ctx context.Context, claims domain.Claims, target string) (*domain.User, error) {
	if err := policy.DeleteUser(claims, target); err != nil {
		return nil, err
	}

	ref, err := domain.ParseTargetRef(target)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteByTarget(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", deleted.ID).Str("by", claims.UserID).Msg("user deleted")
	return deleted, nil
}

func (s *UserService) find(ctx context.Context, ref domain.TargetRef) (*domain.User, error) {
	switch ref.Kind {
	case domain.TargetByID:
		return s.repo.FindByID(ctx, ref.Value)
	case domain.TargetByEmail:
		return s.repo.FindByEmail(ctx, ref.Value)
	default:
		return nil, domain.ErrUserNotFound
	}
}

// insert hashes the password and stores a new user unless the email is taken.
func (s *UserService) insert(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
