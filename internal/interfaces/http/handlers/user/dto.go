package user

import (
	"github.com/trackr-io/trackr/internal/application/user/dto"
	"github.com/trackr-io/trackr/internal/application/user/usecases"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=2,max=100"`
	Avatar *string `json:"avatar" binding:"omitempty,max=500"`
	Bio    *string `json:"bio" binding:"omitempty,max=500"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin developer user"`
}

// TokenResponse is the token half of a login or refresh response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type LoginResponse struct {
	User *dto.UserDTO `json:"user"`
	TokenResponse
}

func toTokenResponse(p *usecases.TokenPair) TokenResponse {
	if p == nil {
		return TokenResponse{}
	}
	return TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    p.ExpiresIn,
	}
}
