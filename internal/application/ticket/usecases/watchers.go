package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

// WatcherCommand targets UserID, or the actor when UserID is zero.
type WatcherCommand struct {
	ActorID  uint
	TicketID uint
	UserID   uint
}

func (c WatcherCommand) target() uint {
	if c.UserID == 0 {
		return c.ActorID
	}
	return c.UserID
}

type WatchersUseCase struct {
	ticketRepo  ticket.Repository
	projectRepo project.Repository
	recorder    ports.ActivityRecorder
	logger      logger.Interface
}

func NewWatchersUseCase(
	ticketRepo ticket.Repository,
	projectRepo project.Repository,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *WatchersUseCase {
	return &WatchersUseCase{ticketRepo: ticketRepo, projectRepo: projectRepo, recorder: recorder, logger: logger}
}

// Add is idempotent. A user other than the actor must be a project member.
func (uc *WatchersUseCase) Add(ctx context.Context, cmd WatcherCommand) (*dto.TicketDTO, error) {
	t, p, err := loadForMember(ctx, uc.ticketRepo, uc.projectRepo, cmd.TicketID, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	userID := cmd.target()
	if err := requireMember(p, userID, "watcher"); err != nil {
		return nil, err
	}
	if !t.AddWatcher(userID) {
		return dto.ToTicketDTO(t), nil
	}
	if err := uc.save(ctx, t); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, watcherEntry(t, cmd.ActorID, userID, "added_watcher"))
	uc.logger.Infow("ticket watcher added", "ticket_id", t.ID(), "user_id", userID)
	return dto.ToTicketDTO(t), nil
}

// Remove is idempotent for members. A user who left the project may still
// remove themself while watching; they get back only the ticket ID and their
// cleared watch state.
func (uc *WatchersUseCase) Remove(ctx context.Context, cmd WatcherCommand) (*dto.TicketDTO, error) {
	userID := cmd.target()
	t, err := loadTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}

	member := true
	if _, err := access.ProjectMember(ctx, uc.projectRepo, t.ProjectID(), cmd.ActorID); err != nil {
		if !errors.IsForbiddenError(err) || userID != cmd.ActorID || !t.IsWatcher(userID) {
			return nil, err
		}
		member = false
	}

	if t.RemoveWatcher(userID) {
		if err := uc.save(ctx, t); err != nil {
			return nil, err
		}
		uc.recorder.Record(ctx, watcherEntry(t, cmd.ActorID, userID, "removed_watcher"))
		uc.logger.Infow("ticket watcher removed", "ticket_id", t.ID(), "user_id", userID)
	}

	if !member {
		return &dto.TicketDTO{ID: t.ID(), Watchers: []uint{}}, nil
	}
	return dto.ToTicketDTO(t), nil
}

func (uc *WatchersUseCase) save(ctx context.Context, t *ticket.Ticket) error {
	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to save ticket watchers", "ticket_id", t.ID(), "error", err)
		return access.Wrap(err, "failed to update ticket watchers")
	}
	return nil
}

func watcherEntry(t *ticket.Ticket, actorID, userID uint, action string) activity.Entry {
	return ticketEntry(t, actorID, activity.ActionUpdated, activity.Details{
		"action":  action,
		"user_id": userID,
	})
}
