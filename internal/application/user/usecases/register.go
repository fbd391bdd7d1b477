package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/user/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/user"
	vo "github.com/trackr-io/trackr/internal/domain/user/valueobjects"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
}

type RegisterUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	policy   vo.PasswordPolicy
	recorder ports.ActivityRecorder
	logger   logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	policy vo.PasswordPolicy,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		policy:   policy,
		recorder: recorder,
		logger:   logger,
	}
}

// Execute creates an account with the user role. The very first account
// becomes an admin.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.UserDTO, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError("invalid email", err.Error())
	}
	if err := uc.policy.Validate(cmd.Password); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, access.Wrap(err, "failed to register user")
	}
	if exists {
		return nil, errors.NewConflictError("a user with this email already exists")
	}

	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count users", "error", err)
		return nil, access.Wrap(err, "failed to register user")
	}
	role := authorization.RoleUser
	if count == 0 {
		role = authorization.RoleAdmin
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	u, err := user.NewUser(cmd.Name, email, hash, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("a user with this email already exists")
		}
		uc.logger.Errorw("failed to create user", "email", email.String(), "error", err)
		return nil, access.Wrap(err, "failed to register user")
	}

	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    u.ID(),
		Action:     activity.ActionCreated,
		EntityType: activity.EntityUser,
		EntityID:   u.ID(),
		Details:    activity.Details{"role": role.String()},
	})

	uc.logger.Infow("user registered", "user_id", u.ID(), "role", role)
	return dto.ToUserDTO(u), nil
}
