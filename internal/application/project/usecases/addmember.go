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
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/domain/user"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type AddMemberCommand struct {
	ActorID   uint
	ProjectID uint
	UserID    uint
	Role      string
}

type AddMemberUseCase struct {
	projectRepo project.Repository
	teamRepo    team.Repository
	userRepo    user.Repository
	recorder    ports.ActivityRecorder
	notifier    ports.Notifier
	logger      logger.Interface
}

func NewAddMemberUseCase(
	projectRepo project.Repository,
	teamRepo team.Repository,
	userRepo user.Repository,
	recorder ports.ActivityRecorder,
	notifier ports.Notifier,
	logger logger.Interface,
) *AddMemberUseCase {
	return &AddMemberUseCase{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		recorder:    recorder,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *AddMemberUseCase) Execute(ctx context.Context, cmd AddMemberCommand) (*dto.ProjectDTO, error) {
	p, err := access.ProjectAdmin(ctx, uc.projectRepo, cmd.ProjectID, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	role, err := membership.ParseRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := uc.userRepo.Exists(ctx, cmd.UserID)
	if err != nil {
		return nil, access.Wrap(err, "failed to check user")
	}
	if !exists {
		return nil, errors.NewNotFoundError("user not found")
	}

	if p.TeamID() != nil {
		tm, err := access.LoadTeam(ctx, uc.teamRepo, *p.TeamID())
		if err != nil {
			return nil, err
		}
		if !tm.IsMember(cmd.UserID) {
			return nil, errors.NewValidationError("user must be a member of the project's team")
		}
	}

	if p.IsMember(cmd.UserID) {
		return nil, errors.NewValidationError("user is already a member of this project")
	}
	if _, err := p.AddMember(cmd.UserID, role); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.projectRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to save project member", "project_id", p.ID(), "user_id", cmd.UserID, "error", err)
		return nil, access.Wrap(err, "failed to add project member")
	}

	pid := p.ID()
	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    cmd.ActorID,
		Action:     activity.ActionJoined,
		EntityType: activity.EntityProject,
		EntityID:   pid,
		ProjectID:  &pid,
		TeamID:     p.TeamID(),
		Details:    activity.Details{"user_id": cmd.UserID, "role": role.String()},
	})

	uc.notifier.Dispatch(ctx, notification.Message{
		SenderID:   cmd.ActorID,
		Type:       notification.TypeProjectInvite,
		Title:      "Project Invitation",
		Body:       fmt.Sprintf("You have been added to project %s as %s", p.Name(), role),
		EntityType: notification.EntityProject,
		EntityID:   pid,
		Link:       fmt.Sprintf("/projects/%d", pid),
	}, cmd.UserID)

	uc.logger.Infow("project member added", "project_id", pid, "user_id", cmd.UserID, "role", role)
	return dto.ToProjectDTO(p), nil
}
