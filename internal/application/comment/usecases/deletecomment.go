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

type DeleteCommentCommand struct {
	ActorID   uint
	CommentID uint
}

type DeleteCommentUseCase struct {
	commentRepo comment.Repository
	ticketRepo  ticket.Repository
	projectRepo project.Repository
	recorder    ports.ActivityRecorder
	logger      logger.Interface
}

func NewDeleteCommentUseCase(
	commentRepo comment.Repository,
	ticketRepo ticket.Repository,
	projectRepo project.Repository,
	recorder ports.ActivityRecorder,
	logger logger.Interface,
) *DeleteCommentUseCase {
	return &DeleteCommentUseCase{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
		projectRepo: projectRepo,
		recorder:    recorder,
		logger:      logger,
	}
}

// Execute deletes a comment. The author and project admins may delete.
func (uc *DeleteCommentUseCase) Execute(ctx context.Context, cmd DeleteCommentCommand) error {
	c, err := loadComment(ctx, uc.commentRepo, cmd.CommentID)
	if err != nil {
		return err
	}
	t, err := uc.ticketRepo.GetByID(ctx, c.TicketID())
	if err != nil {
		return access.Wrap(err, "failed to get ticket")
	}
	if t == nil {
		return errors.NewNotFoundError("ticket not found")
	}
	p, err := access.LoadProject(ctx, uc.projectRepo, t.ProjectID())
	if err != nil {
		return err
	}
	if !c.IsAuthor(cmd.ActorID) && !p.IsAdmin(cmd.ActorID) {
		return errors.NewForbiddenError("only the author or a project admin can delete this comment")
	}

	if err := uc.commentRepo.Delete(ctx, c.ID()); err != nil {
		uc.logger.Errorw("failed to delete comment", "comment_id", c.ID(), "error", err)
		return access.Wrap(err, "failed to delete comment")
	}

	uc.recorder.Record(ctx, commentEntry(c, p.ID(), cmd.ActorID, activity.ActionDeletedComment, nil))
	uc.logger.Infow("comment deleted", "comment_id", c.ID(), "ticket_id", c.TicketID())
	return nil
}
