package usecases

import (
	"context"
	"fmt"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/project/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/shared/membership"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type UpdateMemberRoleCommand struct {
	ActorID   uint
	ProjectID uint
	UserID    uint
	Role      string
}

type UpdateMemberRoleUseCase struct {
	projectRepo project.Repository
	recorder    ports.ActivityRecorder
	notifier    ports.Notifier
	logger      logger.Interface
}

func NewUpdateMemberRoleUseCase(
	projectRepo project.Repository,
	recorder ports.ActivityRecorder,
	notifier ports.Notifier,
	logger logger.Interface,
) *UpdateMemberRoleUseCase {
	return &UpdateMemberRoleUseCase{
		projectRepo: projectRepo,
		recorder:    recorder,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *UpdateMemberRoleUseCase) Execute(ctx context.Context, cmd UpdateMemberRoleCommand) (*dto.ProjectDTO, error) {
	p, err := access.ProjectAdmin(ctx, uc.projectRepo, cmd.ProjectID, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if cmd.Role == "" {
		return nil, errors.NewValidationError("role is required")
	}
	role, err := membership.ParseRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !p.IsMember(cmd.UserID) {
		return nil, errors.NewValidationError("user is not a member of this project")
	}

	changed, err := p.ChangeMemberRole(cmd.UserID, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !changed {
		return dto.ToProjectDTO(p), nil
	}

	if err := uc.projectRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update member role", "project_id", p.ID(), "user_id", cmd.UserID, "error", err)
		return nil, access.Wrap(err, "failed to update member role")
	}

	pid := p.ID()
	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    cmd.ActorID,
		Action:     activity.ActionUpdated,
		EntityType: activity.EntityProject,
		EntityID:   pid,
		ProjectID:  &pid,
		TeamID:     p.TeamID(),
		Details:    activity.Details{"action": "member_role_changed", "user_id": cmd.UserID, "role": role.String()},
	})

	uc.notifier.Dispatch(ctx, notification.Message{
		SenderID:   cmd.ActorID,
		Type:       notification.TypeProjectUpdate,
		Title:      "Role Updated",
		Body:       fmt.Sprintf("Your role in project %s is now %s", p.Name(), role),
		EntityType: notification.EntityProject,
		EntityID:   pid,
		Link:       fmt.Sprintf("/projects/%d", pid),
	}, cmd.UserID)

	return dto.ToProjectDTO(p), nil
}
