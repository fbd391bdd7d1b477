package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

// AssignTicketCommand sets the assignee. A nil AssigneeID unassigns.
type AssignTicketCommand struct {
	ActorID    uint
	TicketID   uint
	AssigneeID *uint
}

type AssignTicketUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	projectRepo project.Repository
	txMgr       ports.TransactionManager
	recorder    ports.ActivityRecorder
	notifier    ports.Notifier
	logger      logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	projectRepo project.Repository,
	txMgr ports.TransactionManager,
	recorder ports.ActivityRecorder,
	notifier ports.Notifier,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		projectRepo: projectRepo,
		txMgr:       txMgr,
		recorder:    recorder,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	t, p, err := loadForMember(ctx, uc.ticketRepo, uc.projectRepo, cmd.TicketID, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	assigneeID := cmd.AssigneeID
	if assigneeID != nil && *assigneeID == 0 {
		assigneeID = nil
	}
	if assigneeID != nil {
		if err := requireMember(p, *assigneeID, "assignee"); err != nil {
			return nil, err
		}
	}

	wasWatcher := assigneeID != nil && t.IsWatcher(*assigneeID)
	change, changed := t.Assign(assigneeID)
	watcherAdded := assigneeID != nil && !wasWatcher
	if !changed && !watcherAdded {
		return dto.ToTicketDTO(t), nil
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return appendHistory(txCtx, uc.historyRepo, t, cmd.ActorID, ticket.ActionAssigned, ticket.Changes{
			ticket.FieldAssignee: change,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to assign ticket", "ticket_id", t.ID(), "actor_id", cmd.ActorID, "error", err)
		return nil, access.Wrap(err, "failed to assign ticket")
	}
	if !changed {
		return dto.ToTicketDTO(t), nil
	}

	uc.recorder.Record(ctx, ticketEntry(t, cmd.ActorID, activity.ActionAssigned, activity.Details{
		"ticket_number": t.Number(),
		"from":          change.From,
		"to":            change.To,
	}))

	if assigneeID != nil {
		uc.notifier.Dispatch(ctx, notification.Message{
			SenderID:   cmd.ActorID,
			Type:       notification.TypeTicketAssigned,
			Title:      "Ticket Assigned",
			Body:       "You have been assigned to " + ticketLabel(t),
			EntityType: notification.EntityTicket,
			EntityID:   t.ID(),
			Link:       ticketLink(t),
		}, *assigneeID)
	}

	uc.logger.Infow("ticket assigned", "ticket_id", t.ID(), "assignee_id", change.To)
	return dto.ToTicketDTO(t), nil
}
