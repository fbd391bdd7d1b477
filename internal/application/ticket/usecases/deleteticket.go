package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type DeleteTicketCommand struct {
	ActorID  uint
	TicketID uint
}

type DeleteTicketUseCase struct {
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	commentRepo comment.Repository
	projectRepo project.Repository
	txMgr       ports.TransactionManager
	recorder    ports.ActivityRecorder
	logger      logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	commentRepo comment.Repository,
	projectRepo project.Repository,
	txMgr ports.TransactionManager,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		commentRepo: commentRepo,
		projectRepo: projectRepo,
		txMgr:       txMgr,
		recorder:    recorder,
		logger:      logger,
	}
}

// Execute deletes the ticket with its comments and history. Project admins
// and the reporter may delete.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	t, p, err := loadForMember(ctx, uc.ticketRepo, uc.projectRepo, cmd.TicketID, cmd.ActorID)
	if err != nil {
		return err
	}
	if !p.IsAdmin(cmd.ActorID) && !t.IsReporter(cmd.ActorID) {
		return errors.NewForbiddenError("only project admins or the reporter can delete a ticket")
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return err
		}
		if err := uc.historyRepo.DeleteByTicket(txCtx, t.ID()); err != nil {
			return err
		}
		return uc.ticketRepo.Delete(txCtx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", t.ID(), "actor_id", cmd.ActorID, "error", err)
		return access.Wrap(err, "failed to delete ticket")
	}

	uc.recorder.Record(ctx, ticketEntry(t, cmd.ActorID, activity.ActionDeleted, activity.Details{
		"ticket_number": t.Number(),
		"title":         t.Title(),
	}))

	uc.logger.Infow("ticket deleted", "ticket_id", t.ID(), "number", t.Number())
	return nil
}
