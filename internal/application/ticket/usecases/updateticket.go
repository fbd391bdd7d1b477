package usecases

import (
	"context"
	"strings"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

// UpdateTicketCommand carries a partial update. Project, reporter and ticket
// number are not part of it.
type UpdateTicketCommand struct {
	ActorID  uint
	TicketID uint
	Patch    ticket.Patch
}

type UpdateTicketUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	projectRepo project.Repository
	txMgr       ports.TransactionManager
	recorder    ports.ActivityRecorder
	notifier    ports.Notifier
	logger      logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	projectRepo project.Repository,
	txMgr ports.TransactionManager,
	recorder ports.ActivityRecorder,
	notifier ports.Notifier,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		projectRepo: projectRepo,
		txMgr:       txMgr,
		recorder:    recorder,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	t, p, err := loadForMember(ctx, uc.ticketRepo, uc.projectRepo, cmd.TicketID, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	patch := cmd.Patch
	if err := validatePatch(p, patch); err != nil {
		return nil, err
	}

	changes, err := t.Diff(patch)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if changes.IsEmpty() {
		return dto.ToTicketDTO(t), nil
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := t.Apply(patch); err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return appendHistory(txCtx, uc.historyRepo, t, cmd.ActorID, ticket.ActionUpdated, changes)
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "actor_id", cmd.ActorID, "error", err)
		return nil, access.Wrap(err, "failed to update ticket")
	}

	uc.recorder.Record(ctx, ticketEntry(t, cmd.ActorID, activity.ActionUpdated, activity.Details{
		"ticket_number": t.Number(),
		"changes":       changesDetail(changes),
	}))

	if c, ok := changes[ticket.FieldAssignee]; ok {
		if to, set := c.To.(uint); set {
			uc.notifier.Dispatch(ctx, notification.Message{
				SenderID:   cmd.ActorID,
				Type:       notification.TypeTicketAssigned,
				Title:      "Ticket Assigned",
				Body:       "You have been assigned to " + ticketLabel(t),
				EntityType: notification.EntityTicket,
				EntityID:   t.ID(),
				Link:       ticketLink(t),
			}, to)
		}
	}

	uc.notifier.Dispatch(ctx, notification.Message{
		SenderID:   cmd.ActorID,
		Type:       notification.TypeTicketUpdate,
		Title:      "Ticket Updated",
		Body:       ticketLabel(t) + " was updated: " + changedFields(changes),
		EntityType: notification.EntityTicket,
		EntityID:   t.ID(),
		Link:       ticketLink(t),
	}, t.Watchers()...)

	uc.logger.Infow("ticket updated", "ticket_id", t.ID(), "fields", len(changes))
	return dto.ToTicketDTO(t), nil
}

func validatePatch(p *project.Project, patch ticket.Patch) error {
	if patch.Type != nil {
		if err := validateField(p, project.KindType, *patch.Type); err != nil {
			return err
		}
	}
	if patch.Status != nil {
		if err := validateField(p, project.KindStatus, *patch.Status); err != nil {
			return err
		}
	}
	if patch.Priority != nil {
		if err := validateField(p, project.KindPriority, *patch.Priority); err != nil {
			return err
		}
	}
	if patch.AssigneeID != nil && !patch.ClearAssignee {
		if err := requireMember(p, *patch.AssigneeID, "assignee"); err != nil {
			return err
		}
	}
	return nil
}

func changedFields(changes ticket.Changes) string {
	fields := make([]string, 0, len(changes))
	for _, f := range []string{
		ticket.FieldTitle, ticket.FieldDescription, ticket.FieldType, ticket.FieldStatus,
		ticket.FieldPriority, ticket.FieldAssignee, ticket.FieldDueDate,
		ticket.FieldEstimatedTime, ticket.FieldLabels,
	} {
		if _, ok := changes[f]; ok {
			fields = append(fields, f)
		}
	}
	return strings.Join(fields, ", ")
}
