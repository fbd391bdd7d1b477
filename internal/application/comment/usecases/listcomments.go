package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/comment/dto"
	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/services/markdown"
)

type ListCommentsUseCase struct {
	commentRepo comment.Repository
	ticketRepo  ticket.Repository
	projectRepo project.Repository
	renderer    markdown.Renderer
	logger      logger.Interface
}

func NewListCommentsUseCase(
	commentRepo comment.Repository,
	ticketRepo ticket.Repository,
	projectRepo project.Repository,
	renderer markdown.Renderer,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
		projectRepo: projectRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

// Execute lists a ticket's comments oldest first.
func (uc *ListCommentsUseCase) Execute(ctx context.Context, actorID, ticketID uint) ([]*dto.CommentDTO, error) {
	t, _, err := ticketForMember(ctx, uc.ticketRepo, uc.projectRepo, ticketID, actorID)
	if err != nil {
		return nil, err
	}
	list, err := uc.commentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", t.ID(), "error", err)
		return nil, access.Wrap(err, "failed to list comments")
	}
	return dto.ToCommentDTOs(list, uc.renderer), nil
}
