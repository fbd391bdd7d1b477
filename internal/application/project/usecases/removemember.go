package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type RemoveMemberCommand struct {
	ActorID   uint
	ProjectID uint
	UserID    uint
}

type RemoveMemberUseCase struct {
	projectRepo project.Repository
	recorder    ports.ActivityRecorder
	logger      logger.Interface
}

func NewRemoveMemberUseCase(
	projectRepo project.Repository,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *RemoveMemberUseCase {
	return &RemoveMemberUseCase{projectRepo: projectRepo, recorder: recorder, logger: logger}
}

// Execute lets admins remove anyone but the owner and members remove
// themselves. Tickets keep a removed assignee.
func (uc *RemoveMemberUseCase) Execute(ctx context.Context, cmd RemoveMemberCommand) error {
	p, err := access.LoadProject(ctx, uc.projectRepo, cmd.ProjectID)
	if err != nil {
		return err
	}
	if !p.IsAdmin(cmd.ActorID) && cmd.ActorID != cmd.UserID {
		return errors.NewForbiddenError("project admin access required")
	}
	if !p.IsMember(cmd.UserID) {
		return errors.NewValidationError("user is not a member of this project")
	}
	if _, err := p.RemoveMember(cmd.UserID); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.projectRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to remove project member", "project_id", p.ID(), "user_id", cmd.UserID, "error", err)
		return access.Wrap(err, "failed to remove project member")
	}

	pid := p.ID()
	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    cmd.ActorID,
		Action:     activity.ActionLeft,
		EntityType: activity.EntityProject,
		EntityID:   pid,
		ProjectID:  &pid,
		TeamID:     p.TeamID(),
		Details:    activity.Details{"user_id": cmd.UserID},
	})

	uc.logger.Infow("project member removed", "project_id", pid, "user_id", cmd.UserID)
	return nil
}
