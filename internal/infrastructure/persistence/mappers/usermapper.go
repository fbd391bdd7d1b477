package mappers

import (
	"fmt"

	"github.com/trackr-io/trackr/internal/domain/user"
	vo "github.com/trackr-io/trackr/internal/domain/user/valueobjects"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	"github.com/trackr-io/trackr/internal/shared/authorization"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(m *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email().String(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Avatar:       u.Avatar(),
		Bio:          u.Bio(),
		LastLoginAt:  u.LastLoginAt(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func (UserMapperImpl) ToDomain(m *models.UserModel) (*user.User, error) {
	email, err := vo.NewEmail(m.Email)
	if err != nil {
		return nil, fmt.Errorf("stored user %d: %w", m.ID, err)
	}
	return user.ReconstructUser(
		m.ID,
		m.Name,
		email,
		m.PasswordHash,
		authorization.UserRole(m.Role),
		m.Avatar,
		m.Bio,
		m.LastLoginAt,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
