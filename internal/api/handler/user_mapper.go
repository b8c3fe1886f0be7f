package handler

import (
	"github.com/burgerqueen/pos-api/internal/core/domain"
)

func toNewUser(req createUserRequest) domain.NewUser {
	return domain.NewUser{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toUserPatch(req updateUserRequest) domain.UserPatch {
	return domain.UserPatch{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
