package usecases

import (
	"context"
	"strings"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/project/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type UpdateTicketConfigCommand struct {
	ActorID   uint
	ProjectID uint
	Kind      project.ConfigKind
	Entries   []dto.ConfigEntryDTO
}

// UpdateTicketConfigUseCase replaces one of the ticket type, status or
// priority lists. Existing tickets are not revalidated.
type UpdateTicketConfigUseCase struct {
	projectRepo project.Repository
	recorder    ports.ActivityRecorder
	logger      logger.Interface
}

func NewUpdateTicketConfigUseCase(
	projectRepo project.Repository,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *UpdateTicketConfigUseCase {
	return &UpdateTicketConfigUseCase{projectRepo: projectRepo, recorder: recorder, logger: logger}
}

var configDetailAction = map[project.ConfigKind]string{
	project.KindType:     "updated_ticket_types",
	project.KindStatus:   "updated_ticket_statuses",
	project.KindPriority: "updated_ticket_priorities",
}

func (uc *UpdateTicketConfigUseCase) Execute(ctx context.Context, cmd UpdateTicketConfigCommand) (*dto.ProjectDTO, error) {
	if !cmd.Kind.IsValid() {
		return nil, errors.NewValidationError("invalid configuration kind")
	}
	p, err := access.ProjectAdmin(ctx, uc.projectRepo, cmd.ProjectID, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	if err := p.ReplaceConfig(cmd.Kind, dto.FromConfigEntryDTOs(cmd.Entries)); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.projectRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update ticket configuration", "project_id", p.ID(), "kind", cmd.Kind, "error", err)
		return nil, access.Wrap(err, "failed to update ticket configuration")
	}

	pid := p.ID()
	names := p.ValidNames(cmd.Kind)
	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    cmd.ActorID,
		Action:     activity.ActionUpdated,
		EntityType: activity.EntityProject,
		EntityID:   pid,
		ProjectID:  &pid,
		TeamID:     p.TeamID(),
		Details:    activity.Details{"action": configDetailAction[cmd.Kind], "values": strings.Join(names, ", ")},
	})

	uc.logger.Infow("ticket configuration replaced", "project_id", pid, "kind", cmd.Kind, "count", len(names))
	return dto.ToProjectDTO(p), nil
}
