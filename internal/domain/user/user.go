// Package user holds registered accounts and their global role.
package user

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/trackr-io/trackr/internal/domain/user/valueobjects"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/biztime"
)

const (
	maxNameLength = 100
	maxBioLength  = 500
)

type User struct {
	id           uint
	name         string
	email        vo.Email
	passwordHash string
	role         authorization.UserRole
	avatar       string
	bio          string
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	if len(name) > maxNameLength {
		return "", fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	}
	return name, nil
}

// NewUser builds an account from an already hashed password.
func NewUser(name string, email vo.Email, passwordHash string, role authorization.UserRole) (*User, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if email.IsZero() {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	now := biztime.NowUTC()
	return &User{
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(
	id uint,
	name string,
	email vo.Email,
	passwordHash string,
	role authorization.UserRole,
	avatar, bio string,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		avatar:       avatar,
		bio:          bio,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Name() string                 { return u.name }
func (u *User) Email() vo.Email              { return u.email }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) Avatar() string               { return u.avatar }
func (u *User) Bio() string                  { return u.bio }
func (u *User) LastLoginAt() *time.Time      { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

func (u *User) SetID(id uint) {
	if u.id == 0 {
		u.id = id
	}
}

func (u *User) IsAdmin() bool {
	return u.role == authorization.RoleAdmin
}

// ProfilePatch carries optional profile updates; nil fields are left alone.
type ProfilePatch struct {
	Name   *string
	Avatar *string
	Bio    *string
}

func (u *User) UpdateProfile(p ProfilePatch) error {
	if p.Name != nil {
		name, err := validateName(*p.Name)
		if err != nil {
			return err
		}
		u.name = name
	}
	if p.Avatar != nil {
		u.avatar = strings.TrimSpace(*p.Avatar)
	}
	if p.Bio != nil {
		if len(*p.Bio) > maxBioLength {
			return fmt.Errorf("bio cannot exceed %d characters", maxBioLength)
		}
		u.bio = *p.Bio
	}
	u.updatedAt = biztime.NowUTC()
	return nil
}

// ChangeRole reports whether the role changed.
func (u *User) ChangeRole(role authorization.UserRole) (bool, error) {
	if !role.IsValid() {
		return false, fmt.Errorf("invalid role %q", role)
	}
	if u.role == role {
		return false, nil
	}
	u.role = role
	u.updatedAt = biztime.NowUTC()
	return true, nil
}

func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
}
