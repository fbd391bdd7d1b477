package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/team/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type CreateTeamCommand struct {
	ActorID     uint
	Name        string
	Description string
}

type CreateTeamUseCase struct {
	teamRepo team.Repository
	recorder ports.ActivityRecorder
	logger   logger.Interface
}

func NewCreateTeamUseCase(teamRepo team.Repository, recorder ports.ActivityRecorder, logger logger.Interface) *CreateTeamUseCase {
	return &CreateTeamUseCase{teamRepo: teamRepo, recorder: recorder, logger: logger}
}

func (uc *CreateTeamUseCase) Execute(ctx context.Context, cmd CreateTeamCommand) (*dto.TeamDTO, error) {
	t, err := team.NewTeam(cmd.Name, cmd.Description, cmd.ActorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.teamRepo.Create(ctx, t); err != nil {
		uc.logger.Errorw("failed to create team", "name", cmd.Name, "error", err)
		return nil, access.Wrap(err, "failed to create team")
	}

	tid := t.ID()
	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    cmd.ActorID,
		Action:     activity.ActionCreated,
		EntityType: activity.EntityTeam,
		EntityID:   tid,
		TeamID:     &tid,
		Details:    activity.Details{"name": t.Name()},
	})

	uc.logger.Infow("team created", "team_id", tid, "owner_id", cmd.ActorID)
	return dto.ToTeamDTO(t), nil
}
