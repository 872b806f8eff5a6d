package http

import (
	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/user"
)

// UserResponse is the public shape of a user. The password hash never
// leaves the service boundary.
type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
}

func (r *UpdateProfileRequest) ToPatch() user.Patch {
	return user.Patch{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

type AdminUpdateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	IsAdmin *bool   `json:"isAdmin"`
}

func (r *AdminUpdateUserRequest) ToPatch() user.AdminPatch {
	return user.AdminPatch{
		Name:    r.Name,
		Email:   r.Email,
		IsAdmin: r.IsAdmin,
	}
}
