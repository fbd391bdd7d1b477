package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/user/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/user"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type ChangeRoleCommand struct {
	ActorID   uint
	ActorRole authorization.UserRole
	UserID    uint
	Role      string
}

type ChangeRoleUseCase struct {
	userRepo user.Repository
	enforcer ports.PolicyEnforcer
	recorder ports.ActivityRecorder
	logger   logger.Interface
}

func NewChangeRoleUseCase(
	userRepo user.Repository,
	enforcer ports.PolicyEnforcer,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *ChangeRoleUseCase {
	return &ChangeRoleUseCase{userRepo: userRepo, enforcer: enforcer, recorder: recorder, logger: logger}
}

func (uc *ChangeRoleUseCase) Execute(ctx context.Context, cmd ChangeRoleCommand) (*dto.UserDTO, error) {
	allowed, err := uc.enforcer.Enforce(cmd.ActorRole.String(), ports.ResourceUser, ports.ActionManage)
	if err != nil {
		uc.logger.Errorw("failed to evaluate policy", "actor_id", cmd.ActorID, "error", err)
		return nil, errors.NewInternalError("failed to check permissions")
	}
	if !allowed {
		return nil, errors.NewForbiddenError("admin access required")
	}
	if cmd.UserID == cmd.ActorID {
		return nil, errors.NewValidationError("you cannot change your own role")
	}

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role", "valid roles: admin, developer, user")
	}

	u, err := loadUser(ctx, uc.userRepo, cmd.UserID)
	if err != nil {
		return nil, err
	}
	from := u.Role()
	changed, err := u.ChangeRole(role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !changed {
		return dto.ToUserDTO(u), nil
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to save user role", "user_id", u.ID(), "error", err)
		return nil, access.Wrap(err, "failed to change role")
	}

	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    cmd.ActorID,
		Action:     activity.ActionUpdated,
		EntityType: activity.EntityUser,
		EntityID:   u.ID(),
		Details:    activity.Details{"role": map[string]any{"from": from.String(), "to": role.String()}},
	})

	uc.logger.Infow("user role changed", "user_id", u.ID(), "from", from, "to", role)
	return dto.ToUserDTO(u), nil
}
