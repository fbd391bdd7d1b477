package usecases

import (
	"context"
	"fmt"

	"github.com/trackr-io/trackr/internal/application/comment/dto"
	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/common/ports"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/services/markdown"
	"github.com/trackr-io/trackr/internal/shared/utils/setutil"
)

type CreateCommentCommand struct {
	ActorID     uint
	TicketID    uint
	Content     string
	Attachments []AttachmentInput
}

type CreateCommentUseCase struct {
	commentRepo comment.Repository
	ticketRepo  ticket.Repository
	projectRepo project.Repository
	mentions    MentionResolver
	txMgr       ports.TransactionManager
	recorder    ports.ActivityRecorder
	notifier    ports.Notifier
	renderer    markdown.Renderer
	logger      logger.Interface
}

func NewCreateCommentUseCase(
	commentRepo comment.Repository,
	ticketRepo ticket.Repository,
	projectRepo project.Repository,
	mentions MentionResolver,
	txMgr ports.TransactionManager,
	recorder ports.ActivityRecorder,
	notifier ports.Notifier,
	renderer markdown.Renderer,
	logger logger.Interface,
) *CreateCommentUseCase {
	if mentions == nil {
		mentions = NopMentionResolver{}
	}
	return &CreateCommentUseCase{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
		projectRepo: projectRepo,
		mentions:    mentions,
		txMgr:       txMgr,
		recorder:    recorder,
		notifier:    notifier,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *CreateCommentUseCase) Execute(ctx context.Context, cmd CreateCommentCommand) (*dto.CommentDTO, error) {
	t, p, err := ticketForMember(ctx, uc.ticketRepo, uc.projectRepo, cmd.TicketID, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	attachments, err := buildAttachments(cmd.Attachments, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	c, err := comment.NewComment(t.ID(), cmd.ActorID, cmd.Content, attachments)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.commentRepo.Create(txCtx, c); err != nil {
			return err
		}
		if t.AddWatcher(cmd.ActorID) {
			return uc.ticketRepo.Update(txCtx, t)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create comment", "ticket_id", t.ID(), "actor_id", cmd.ActorID, "error", err)
		return nil, access.Wrap(err, "failed to create comment")
	}

	uc.recorder.Record(ctx, commentEntry(c, p.ID(), cmd.ActorID, activity.ActionCommented, activity.Details{
		"ticket_number": t.Number(),
	}))

	mentioned := uc.resolveMentions(ctx, p, c)
	followers := setutil.NewUintSet(t.ReporterID())
	followers.AddAll(t.Watchers())
	if a := t.AssigneeID(); a != nil {
		followers.Add(*a)
	}
	for _, id := range mentioned.ToSlice() {
		followers.Remove(id)
	}

	uc.notifier.Dispatch(ctx, notification.Message{
		SenderID:   cmd.ActorID,
		Type:       notification.TypeTicketComment,
		Title:      "New Comment",
		Body:       fmt.Sprintf("New comment on %s: %s", t.Number(), t.Title()),
		EntityType: notification.EntityTicket,
		EntityID:   t.ID(),
		Link:       ticketLink(t),
	}, followers.ToSlice()...)
	if mentioned.Len() > 0 {
		uc.notifier.Dispatch(ctx, notification.Message{
			SenderID:   cmd.ActorID,
			Type:       notification.TypeMentioned,
			Title:      "You were mentioned",
			Body:       fmt.Sprintf("You were mentioned in a comment on %s", t.Number()),
			EntityType: notification.EntityComment,
			EntityID:   c.ID(),
			Link:       ticketLink(t),
		}, mentioned.ToSlice()...)
	}

	uc.logger.Infow("comment created", "comment_id", c.ID(), "ticket_id", t.ID())
	return dto.ToCommentDTO(c, uc.renderer), nil
}

// resolveMentions returns the mentioned users other than the author. Each
// recipient gets one notification per comment, and a mention replaces the
// plain comment notice.
func (uc *CreateCommentUseCase) resolveMentions(ctx context.Context, p *project.Project, c *comment.Comment) *setutil.UintSet {
	mentioned := setutil.NewUintSet()
	tokens := c.Mentions()
	if len(tokens) == 0 {
		return mentioned
	}
	ids, err := uc.mentions.Resolve(ctx, p.ID(), tokens)
	if err != nil {
		uc.logger.Warnw("failed to resolve mentions", "comment_id", c.ID(), "error", err)
		return mentioned
	}
	mentioned.AddAll(ids)
	mentioned.Remove(0)
	mentioned.Remove(c.AuthorID())
	return mentioned
}
