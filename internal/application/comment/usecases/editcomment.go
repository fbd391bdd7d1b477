package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/comment/dto"
	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/services/markdown"
)

// EditCommentCommand replaces the content. A nil Attachments keeps the
// current attachments.
type EditCommentCommand struct {
	ActorID     uint
	CommentID   uint
	Content     string
	Attachments []AttachmentInput
}

type EditCommentUseCase struct {
	commentRepo comment.Repository
	ticketRepo  ticket.Repository
	projectRepo project.Repository
	recorder    ports.ActivityRecorder
	renderer    markdown.Renderer
	logger      logger.Interface
}

func NewEditCommentUseCase(
	commentRepo comment.Repository,
	ticketRepo ticket.Repository,
	projectRepo project.Repository,
	recorder ports.ActivityRecorder,
	renderer markdown.Renderer,
	logger logger.Interface,
) *EditCommentUseCase {
	return &EditCommentUseCase{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
		projectRepo: projectRepo,
		recorder:    recorder,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *EditCommentUseCase) Execute(ctx context.Context, cmd EditCommentCommand) (*dto.CommentDTO, error) {
	c, err := loadComment(ctx, uc.commentRepo, cmd.CommentID)
	if err != nil {
		return nil, err
	}
	if !c.IsAuthor(cmd.ActorID) {
		return nil, errors.NewForbiddenError("only the author can edit this comment")
	}
	t, _, err := ticketForMember(ctx, uc.ticketRepo, uc.projectRepo, c.TicketID(), cmd.ActorID)
	if err != nil {
		return nil, err
	}

	attachments, err := buildAttachments(cmd.Attachments, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if err := c.Edit(cmd.Content, attachments); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.commentRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update comment", "comment_id", c.ID(), "error", err)
		return nil, access.Wrap(err, "failed to update comment")
	}

	uc.recorder.Record(ctx, commentEntry(c, t.ProjectID(), cmd.ActorID, activity.ActionUpdatedComment, nil))

	uc.logger.Infow("comment edited", "comment_id", c.ID(), "edits", len(c.EditHistory()))
	return dto.ToCommentDTO(c, uc.renderer), nil
}
