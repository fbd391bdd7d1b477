package dto

import (
	"time"

	"github.com/trackr-io/trackr/internal/domain/user"
)

type UserDTO struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Avatar      string     `json:"avatar,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UserSummaryDTO is the public view returned by search.
type UserSummaryDTO struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID(),
		Name:        u.Name(),
		Email:       u.Email().String(),
		Role:        u.Role().String(),
		Avatar:      u.Avatar(),
		Bio:         u.Bio(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
	}
}

func ToUserSummaryDTOs(list []*user.User) []*UserSummaryDTO {
	out := make([]*UserSummaryDTO, 0, len(list))
	for _, u := range list {
		out = append(out, &UserSummaryDTO{ID: u.ID(), Name: u.Name(), Email: u.Email().String(), Avatar: u.Avatar()})
	}
	return out
}
