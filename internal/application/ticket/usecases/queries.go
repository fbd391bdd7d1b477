package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	appproject "github.com/trackr-io/trackr/internal/application/project"
	"github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type ListTicketsCommand struct {
	ActorID    uint
	ActorRole  authorization.UserRole
	ProjectID  uint
	Status     string
	Priority   string
	Type       string
	AssigneeID *uint
	Unassigned bool
	ReporterID *uint
	Search     string
	Page       query.PageFilter
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketDTO
	Total    int64
	Page     int
	PageSize int
}

// QueryTicketsUseCase serves the read side: get, list and history.
type QueryTicketsUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	projectRepo project.Repository
	logger      logger.Interface
}

func NewQueryTicketsUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	projectRepo project.Repository,
	logger logger.Interface,
) *QueryTicketsUseCase {
	return &QueryTicketsUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

func (uc *QueryTicketsUseCase) Get(ctx context.Context, actorID, ticketID uint) (*dto.TicketDTO, error) {
	t, _, err := loadForMember(ctx, uc.ticketRepo, uc.projectRepo, ticketID, actorID)
	if err != nil {
		return nil, err
	}
	return dto.ToTicketDTO(t), nil
}

// History returns entries oldest first.
func (uc *QueryTicketsUseCase) History(ctx context.Context, actorID, ticketID uint) ([]*dto.HistoryEntryDTO, error) {
	t, _, err := loadForMember(ctx, uc.ticketRepo, uc.projectRepo, ticketID, actorID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.historyRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list ticket history", "ticket_id", t.ID(), "error", err)
		return nil, access.Wrap(err, "failed to get ticket history")
	}
	return dto.ToHistoryEntryDTOs(entries), nil
}

func (uc *QueryTicketsUseCase) List(ctx context.Context, cmd ListTicketsCommand) (*ListTicketsResult, error) {
	filter := ticket.ListFilter{
		ProjectID:  cmd.ProjectID,
		Status:     cmd.Status,
		Priority:   cmd.Priority,
		Type:       cmd.Type,
		AssigneeID: cmd.AssigneeID,
		Unassigned: cmd.Unassigned,
		ReporterID: cmd.ReporterID,
		Search:     cmd.Search,
		Page:       cmd.Page.Normalize(),
	}

	empty := &ListTicketsResult{Tickets: []*dto.TicketDTO{}, Page: filter.Page.Page, PageSize: filter.Page.PageSize}
	if cmd.ProjectID != 0 {
		if _, err := access.ProjectMember(ctx, uc.projectRepo, cmd.ProjectID, cmd.ActorID); err != nil {
			return nil, err
		}
	} else {
		ids, err := uc.projectRepo.VisibleIDs(ctx, appproject.VisibilityFor(cmd.ActorRole, cmd.ActorID).Query())
		if err != nil {
			uc.logger.Errorw("failed to resolve visible projects", "actor_id", cmd.ActorID, "error", err)
			return nil, access.Wrap(err, "failed to list tickets")
		}
		if len(ids) == 0 {
			return empty, nil
		}
		filter.ProjectIDs = ids
	}

	list, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "actor_id", cmd.ActorID, "error", err)
		return nil, access.Wrap(err, "failed to list tickets")
	}
	empty.Tickets = dto.ToTicketDTOs(list)
	empty.Total = total
	return empty, nil
}
