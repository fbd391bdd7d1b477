package usecases

import (
	"context"
	"fmt"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type TransitionStatusCommand struct {
	ActorID  uint
	TicketID uint
	Status   string
}

type TransitionStatusUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	projectRepo project.Repository
	txMgr       ports.TransactionManager
	recorder    ports.ActivityRecorder
	notifier    ports.Notifier
	logger      logger.Interface
}

func NewTransitionStatusUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	projectRepo project.Repository,
	txMgr ports.TransactionManager,
	recorder ports.ActivityRecorder,
	notifier ports.Notifier,
	logger logger.Interface,
) *TransitionStatusUseCase {
	return &TransitionStatusUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		projectRepo: projectRepo,
		txMgr:       txMgr,
		recorder:    recorder,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *TransitionStatusUseCase) Execute(ctx context.Context, cmd TransitionStatusCommand) (*dto.TicketDTO, error) {
	t, p, err := loadForMember(ctx, uc.ticketRepo, uc.projectRepo, cmd.TicketID, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if err := validateField(p, project.KindStatus, cmd.Status); err != nil {
		return nil, err
	}

	change, changed := t.TransitionStatus(cmd.Status)
	if !changed {
		return dto.ToTicketDTO(t), nil
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return appendHistory(txCtx, uc.historyRepo, t, cmd.ActorID, ticket.ActionStatusChanged, ticket.Changes{
			ticket.FieldStatus: change,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to change ticket status", "ticket_id", t.ID(), "status", cmd.Status, "error", err)
		return nil, access.Wrap(err, "failed to change ticket status")
	}

	uc.recorder.Record(ctx, ticketEntry(t, cmd.ActorID, activity.ActionStatusChanged, activity.Details{
		"ticket_number": t.Number(),
		"from":          change.From,
		"to":            change.To,
	}))

	recipients := []uint{t.ReporterID()}
	if a := t.AssigneeID(); a != nil {
		recipients = append(recipients, *a)
	}
	uc.notifier.Dispatch(ctx, notification.Message{
		SenderID:   cmd.ActorID,
		Type:       notification.TypeTicketStatusChanged,
		Title:      "Ticket Status Changed",
		Body:       fmt.Sprintf("%s moved from %v to %v", ticketLabel(t), change.From, change.To),
		EntityType: notification.EntityTicket,
		EntityID:   t.ID(),
		Link:       ticketLink(t),
	}, recipients...)

	uc.logger.Infow("ticket status changed", "ticket_id", t.ID(), "from", change.From, "to", change.To)
	return dto.ToTicketDTO(t), nil
}
