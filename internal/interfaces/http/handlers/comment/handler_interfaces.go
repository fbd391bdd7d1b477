package comment

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/comment/dto"
	"github.com/trackr-io/trackr/internal/application/comment/usecases"
)

type createCommentExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateCommentCommand) (*dto.CommentDTO, error)
}

type editCommentExecutor interface {
	Execute(ctx context.Context, cmd usecases.EditCommentCommand) (*dto.CommentDTO, error)
}

type deleteCommentExecutor interface {
	Execute(ctx context.Context, cmd usecases.DeleteCommentCommand) error
}

type listCommentsExecutor interface {
	Execute(ctx context.Context, actorID, ticketID uint) ([]*dto.CommentDTO, error)
}

type attachmentService interface {
	Add(ctx context.Context, actorID, commentID uint, in usecases.AttachmentInput) (*dto.CommentDTO, error)
	Remove(ctx context.Context, actorID, commentID uint, attachmentID string) (*dto.CommentDTO, error)
}
