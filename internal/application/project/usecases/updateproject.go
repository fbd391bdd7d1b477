package usecases

import (
	"context"
	"time"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/project/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type UpdateProjectCommand struct {
	ActorID     uint
	ProjectID   uint
	Name        *string
	Description *string
	Category    *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
	ClearEnd    bool
}

type UpdateProjectUseCase struct {
	projectRepo project.Repository
	recorder    ports.ActivityRecorder
	logger      logger.Interface
}

func NewUpdateProjectUseCase(
	projectRepo project.Repository,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{projectRepo: projectRepo, recorder: recorder, logger: logger}
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, cmd UpdateProjectCommand) (*dto.ProjectDTO, error) {
	p, err := access.ProjectAdmin(ctx, uc.projectRepo, cmd.ProjectID, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	patch := project.DetailsPatch{
		Name:        cmd.Name,
		Description: cmd.Description,
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
		ClearEnd:    cmd.ClearEnd,
	}
	if cmd.Category != nil {
		c := project.Category(*cmd.Category)
		patch.Category = &c
	}
	if cmd.Status != nil {
		s := project.Status(*cmd.Status)
		patch.Status = &s
	}

	changed, err := p.UpdateDetails(patch)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if len(changed) == 0 {
		return dto.ToProjectDTO(p), nil
	}

	if err := uc.projectRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update project", "project_id", p.ID(), "error", err)
		return nil, access.Wrap(err, "failed to update project")
	}

	pid := p.ID()
	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    cmd.ActorID,
		Action:     activity.ActionUpdated,
		EntityType: activity.EntityProject,
		EntityID:   pid,
		ProjectID:  &pid,
		TeamID:     p.TeamID(),
		Details:    activity.Details{"fields": changed},
	})

	uc.logger.Infow("project updated", "project_id", pid, "fields", changed)
	return dto.ToProjectDTO(p), nil
}
