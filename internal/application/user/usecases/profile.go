package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/user/dto"
	"github.com/trackr-io/trackr/internal/domain/user"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type UpdateProfileCommand struct {
	ActorID uint
	Name    *string
	Avatar  *string
	Bio     *string
}

type ProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewProfileUseCase(userRepo user.Repository, logger logger.Interface) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ProfileUseCase) Get(ctx context.Context, actorID uint) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	return dto.ToUserDTO(u), nil
}

func (uc *ProfileUseCase) Update(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error) {
	u, err := loadUser(ctx, uc.userRepo, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(user.ProfilePatch{Name: cmd.Name, Avatar: cmd.Avatar, Bio: cmd.Bio}); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update profile", "user_id", u.ID(), "error", err)
		return nil, access.Wrap(err, "failed to update profile")
	}
	uc.logger.Infow("profile updated", "user_id", u.ID())
	return dto.ToUserDTO(u), nil
}

func loadUser(ctx context.Context, repo user.Repository, userID uint) (*user.User, error) {
	u, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, access.Wrap(err, "failed to get user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}
