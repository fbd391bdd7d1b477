package models

import (
	"time"

	"github.com/trackr-io/trackr/internal/shared/constants"
)

// UserModel is the persistence shape of a user account.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"not null;size:100;index:idx_users_name"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null;size:255"`
	Role         string `gorm:"not null;size:20;default:developer"`
	Avatar       string `gorm:"size:500"`
	Bio          string `gorm:"size:500"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
