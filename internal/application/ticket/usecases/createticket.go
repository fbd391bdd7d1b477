package usecases

import (
	"context"
	"fmt"
	"time"

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

type CreateTicketCommand struct {
	ActorID       uint
	ProjectID     uint
	Title         string
	Description   string
	Type          string
	Status        string
	Priority      string
	AssigneeID    *uint
	DueDate       *time.Time
	EstimatedTime float64
	Labels        []string
}

type CreateTicketUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	projectRepo project.Repository
	numbers     ticket.NumberGenerator
	txMgr       ports.TransactionManager
	recorder    ports.ActivityRecorder
	notifier    ports.Notifier
	logger      logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	projectRepo project.Repository,
	numbers ticket.NumberGenerator,
	txMgr ports.TransactionManager,
	recorder ports.ActivityRecorder,
	notifier ports.Notifier,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		projectRepo: projectRepo,
		numbers:     numbers,
		txMgr:       txMgr,
		recorder:    recorder,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	p, err := access.ProjectMember(ctx, uc.projectRepo, cmd.ProjectID, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		kind  project.ConfigKind
		value string
	}{
		{project.KindType, cmd.Type},
		{project.KindStatus, cmd.Status},
		{project.KindPriority, cmd.Priority},
	} {
		if f.value == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("ticket %s is required", f.kind))
		}
		if err := validateField(p, f.kind, f.value); err != nil {
			return nil, err
		}
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

	t, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:     p.ID(),
		ReporterID:    cmd.ActorID,
		Title:         cmd.Title,
		Description:   cmd.Description,
		Type:          cmd.Type,
		Status:        cmd.Status,
		Priority:      cmd.Priority,
		AssigneeID:    assigneeID,
		DueDate:       cmd.DueDate,
		EstimatedTime: cmd.EstimatedTime,
		Labels:        cmd.Labels,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		number, err := uc.numbers.Next(txCtx, p.ID(), p.Key())
		if err != nil {
			return err
		}
		if err := t.SetNumber(number); err != nil {
			return err
		}
		if err := uc.ticketRepo.Create(txCtx, t); err != nil {
			return err
		}
		return appendHistory(txCtx, uc.historyRepo, t, cmd.ActorID, ticket.ActionCreated, ticket.Changes{
			ticket.FieldTitle:  {From: nil, To: t.Title()},
			ticket.FieldStatus: {From: nil, To: t.Status()},
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "project_id", p.ID(), "actor_id", cmd.ActorID, "error", err)
		return nil, access.Wrap(err, "failed to create ticket")
	}

	uc.recorder.Record(ctx, ticketEntry(t, cmd.ActorID, activity.ActionCreated, activity.Details{
		"ticket_number": t.Number(),
		"title":         t.Title(),
	}))

	if assigneeID != nil {
		uc.notifier.Dispatch(ctx, notification.Message{
			SenderID:   cmd.ActorID,
			Type:       notification.TypeTicketAssigned,
			Title:      "New Ticket Assigned",
			Body:       "You have been assigned to " + ticketLabel(t),
			EntityType: notification.EntityTicket,
			EntityID:   t.ID(),
			Link:       ticketLink(t),
		}, *assigneeID)
	}

	uc.logger.Infow("ticket created", "ticket_id", t.ID(), "number", t.Number(), "project_id", p.ID())
	return dto.ToTicketDTO(t), nil
}
