package handler

import "github.com/appointly/identity-service/internal/core/domain"

type createUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=user admin"`
}

func (r *createUserRequest) roleSet() []domain.Role {
	roles := make([]domain.Role, len(r.Roles))
	for i, role := range r.Roles {
		roles[i] = domain.Role(role)
	}
	return roles
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}
