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

type DeleteProjectCommand struct {
	ActorID   uint
	ProjectID uint
}

type DeleteProjectUseCase struct {
	projectRepo project.Repository
	ticketRepo  ticket.Repository
	historyRepo ticket.HistoryRepository
	commentRepo comment.Repository
	txManager   ports.TransactionManager
	recorder    ports.ActivityRecorder
	logger      logger.Interface
}

func NewDeleteProjectUseCase(
	projectRepo project.Repository,
	ticketRepo ticket.Repository,
	historyRepo ticket.HistoryRepository,
	commentRepo comment.Repository,
	txManager ports.TransactionManager,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{
		projectRepo: projectRepo,
		ticketRepo:  ticketRepo,
		historyRepo: historyRepo,
		commentRepo: commentRepo,
		txManager:   txManager,
		recorder:    recorder,
		logger:      logger,
	}
}

// Execute removes the project with its tickets, comments and history.
func (uc *DeleteProjectUseCase) Execute(ctx context.Context, cmd DeleteProjectCommand) error {
	p, err := access.LoadProject(ctx, uc.projectRepo, cmd.ProjectID)
	if err != nil {
		return err
	}
	if !p.IsOwner(cmd.ActorID) {
		return errors.NewForbiddenError("only the project owner can delete the project")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		ids, err := uc.ticketRepo.IDsByProject(txCtx, p.ID())
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := uc.commentRepo.DeleteByTicket(txCtx, ids...); err != nil {
				return err
			}
			if err := uc.historyRepo.DeleteByTicket(txCtx, ids...); err != nil {
				return err
			}
			if err := uc.ticketRepo.DeleteByProject(txCtx, p.ID()); err != nil {
				return err
			}
		}
		return uc.projectRepo.Delete(txCtx, p.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete project", "project_id", p.ID(), "error", err)
		return access.Wrap(err, "failed to delete project")
	}

	pid := p.ID()
	uc.recorder.Record(ctx, activity.Entry{
		ActorID:    cmd.ActorID,
		Action:     activity.ActionDeleted,
		EntityType: activity.EntityProject,
		EntityID:   pid,
		ProjectID:  &pid,
		TeamID:     p.TeamID(),
		Details:    activity.Details{"name": p.Name(), "key": p.Key()},
	})

	uc.logger.Infow("project deleted", "project_id", pid)
	return nil
}
