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

// CommentAttachmentsUseCase adds and removes attachments on a comment. Only
// the author may do either.
type CommentAttachmentsUseCase struct {
	commentRepo comment.Repository
	ticketRepo  ticket.Repository
	projectRepo project.Repository
	recorder    ports.ActivityRecorder
	renderer    markdown.Renderer
	logger      logger.Interface
}

func NewCommentAttachmentsUseCase(
	commentRepo comment.Repository,
	ticketRepo ticket.Repository,
	projectRepo project.Repository,
	recorder ports.ActivityRecorder,
	renderer markdown.Renderer,
	logger logger.Interface,
) *CommentAttachmentsUseCase {
	return &CommentAttachmentsUseCase{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
		projectRepo: projectRepo,
		recorder:    recorder,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *CommentAttachmentsUseCase) Add(ctx context.Context, actorID, commentID uint, in AttachmentInput) (*dto.CommentDTO, error) {
	c, t, err := uc.loadOwn(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}
	a, err := ticket.NewAttachment(in.Name, in.URL, in.Type, in.Size, actorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := c.AddAttachment(a); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.save(ctx, c); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, commentEntry(c, t.ProjectID(), actorID, activity.ActionUpdatedComment, activity.Details{
		"action": "added_attachment",
		"name":   a.Name,
	}))
	return dto.ToCommentDTO(c, uc.renderer), nil
}

func (uc *CommentAttachmentsUseCase) Remove(ctx context.Context, actorID, commentID uint, attachmentID string) (*dto.CommentDTO, error) {
	c, t, err := uc.loadOwn(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}
	a, ok := c.RemoveAttachment(attachmentID)
	if !ok {
		return nil, errors.NewNotFoundError("attachment not found")
	}
	if err := uc.save(ctx, c); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, commentEntry(c, t.ProjectID(), actorID, activity.ActionUpdatedComment, activity.Details{
		"action": "removed_attachment",
		"name":   a.Name,
	}))
	return dto.ToCommentDTO(c, uc.renderer), nil
}

func (uc *CommentAttachmentsUseCase) loadOwn(ctx context.Context, actorID, commentID uint) (*comment.Comment, *ticket.Ticket, error) {
	c, err := loadComment(ctx, uc.commentRepo, commentID)
	if err != nil {
		return nil, nil, err
	}
	if !c.IsAuthor(actorID) {
		return nil, nil, errors.NewForbiddenError("only the author can change this comment's attachments")
	}
	t, _, err := ticketForMember(ctx, uc.ticketRepo, uc.projectRepo, c.TicketID(), actorID)
	if err != nil {
		return nil, nil, err
	}
	return c, t, nil
}

func (uc *CommentAttachmentsUseCase) save(ctx context.Context, c *comment.Comment) error {
	if err := uc.commentRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update comment attachments", "comment_id", c.ID(), "error", err)
		return access.Wrap(err, "failed to update comment")
	}
	return nil
}
