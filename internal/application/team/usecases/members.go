package usecases

import (
	"context"
	"fmt"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/team/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/shared/membership"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/domain/user"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type MemberCommand struct {
	ActorID uint
	TeamID  uint
	UserID  uint
	Role    string
}

// MembersUseCase groups the team roster operations. Owner protection lives
// in the team aggregate.
type MembersUseCase struct {
	teamRepo team.Repository
	userRepo user.Repository
	recorder ports.ActivityRecorder
	notifier ports.Notifier
	logger   logger.Interface
}

func NewMembersUseCase(
	teamRepo team.Repository,
	userRepo user.Repository,
	recorder ports.ActivityRecorder,
	notifier ports.Notifier,
	logger logger.Interface,
) *MembersUseCase {
	return &MembersUseCase{
		teamRepo: teamRepo,
		userRepo: userRepo,
		recorder: recorder,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *MembersUseCase) Add(ctx context.Context, cmd MemberCommand) (*dto.TeamDTO, error) {
	t, err := access.TeamAdmin(ctx, uc.teamRepo, cmd.TeamID, cmd.ActorID)
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
	if t.IsMember(cmd.UserID) {
		return nil, errors.NewValidationError("user is already a member of this team")
	}
	if _, err := t.AddMember(cmd.UserID, role); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.save(ctx, t); err != nil {
		return nil, err
	}

	uc.record(ctx, t, cmd.ActorID, activity.ActionJoined, activity.Details{"user_id": cmd.UserID, "role": role.String()})
	uc.notifier.Dispatch(ctx, notification.Message{
		SenderID:   cmd.ActorID,
		Type:       notification.TypeTeamInvite,
		Title:      "Team Invitation",
		Body:       fmt.Sprintf("You have been added to team %s", t.Name()),
		EntityType: notification.EntityTeam,
		EntityID:   t.ID(),
		Link:       fmt.Sprintf("/teams/%d", t.ID()),
	}, cmd.UserID)
	return dto.ToTeamDTO(t), nil
}

// Remove lets admins remove others and any member leave.
func (uc *MembersUseCase) Remove(ctx context.Context, cmd MemberCommand) error {
	t, err := access.LoadTeam(ctx, uc.teamRepo, cmd.TeamID)
	if err != nil {
		return err
	}
	if !t.IsAdmin(cmd.ActorID) && cmd.ActorID != cmd.UserID {
		return errors.NewForbiddenError("team admin access required")
	}
	if !t.IsMember(cmd.UserID) {
		return errors.NewValidationError("user is not a member of this team")
	}
	if _, err := t.RemoveMember(cmd.UserID); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := uc.save(ctx, t); err != nil {
		return err
	}
	uc.record(ctx, t, cmd.ActorID, activity.ActionLeft, activity.Details{"user_id": cmd.UserID})
	return nil
}

func (uc *MembersUseCase) UpdateRole(ctx context.Context, cmd MemberCommand) (*dto.TeamDTO, error) {
	t, err := access.TeamAdmin(ctx, uc.teamRepo, cmd.TeamID, cmd.ActorID)
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
	if !t.IsMember(cmd.UserID) {
		return nil, errors.NewValidationError("user is not a member of this team")
	}
	changed, err := t.ChangeMemberRole(cmd.UserID, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !changed {
		return dto.ToTeamDTO(t), nil
	}
	if err := uc.save(ctx, t); err != nil {
		return nil, err
	}

	uc.record(ctx, t, cmd.ActorID, activity.ActionUpdated, activity.Details{
		"action":  "member_role_changed",
		"user_id": cmd.UserID,
		"role":    role.String(),
	})
	uc.notifier.Dispatch(ctx, notification.Message{
		SenderID:   cmd.ActorID,
		Type:       notification.TypeTeamUpdate,
		Title:      "Role Updated",
		Body:       fmt.Sprintf("Your role in team %s is now %s", t.Name(), role),
		EntityType: notification.EntityTeam,
		EntityID:   t.ID(),
		Link:       fmt.Sprintf("/teams/%d", t.ID()),
	}, cmd.UserID)
	return dto.ToTeamDTO(t), nil
}

func (uc *MembersUseCase) save(ctx context.Context, t *team.Team) error {
	if err := uc.teamRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to save team", "team_id", t.ID(), "error", err)
		return access.Wrap(err, "failed to update team")
	}
	return nil
}

func (uc *MembersUseCase) record(ctx context.Context, t *team.Team, actorID uint, action activity.Action, details activity.Details) {
	tid := t.ID()
	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: activity.EntityTeam,
		EntityID:   tid,
		TeamID:     &tid,
		Details:    details,
	})
}
