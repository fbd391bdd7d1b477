package usecases

import (
	"context"
	"fmt"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
)

// AttachmentInput is attachment metadata supplied by the client.
type AttachmentInput struct {
	Name string
	URL  string
	Type string
	Size int64
}

// MentionResolver maps @tokens to user IDs within a project.
type MentionResolver interface {
	Resolve(ctx context.Context, projectID uint, tokens []string) ([]uint, error)
}

// NopMentionResolver resolves nothing. Mentions stay as stored tokens.
type NopMentionResolver struct{}

func (NopMentionResolver) Resolve(context.Context, uint, []string) ([]uint, error) {
	return nil, nil
}

func buildAttachments(in []AttachmentInput, uploadedBy uint) ([]ticket.Attachment, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]ticket.Attachment, 0, len(in))
	for _, a := range in {
		att, err := ticket.NewAttachment(a.Name, a.URL, a.Type, a.Size, uploadedBy)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		out = append(out, att)
	}
	return out, nil
}

func loadComment(ctx context.Context, repo comment.Repository, commentID uint) (*comment.Comment, error) {
	c, err := repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, access.Wrap(err, "failed to get comment")
	}
	if c == nil {
		return nil, errors.NewNotFoundError("comment not found")
	}
	return c, nil
}

// ticketForMember loads the ticket and its project once actorID is known to
// be a project member.
func ticketForMember(ctx context.Context, tickets ticket.Repository, projects project.Repository, ticketID, actorID uint) (*ticket.Ticket, *project.Project, error) {
	t, err := tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, access.Wrap(err, "failed to get ticket")
	}
	if t == nil {
		return nil, nil, errors.NewNotFoundError("ticket not found")
	}
	p, err := access.ProjectMember(ctx, projects, t.ProjectID(), actorID)
	if err != nil {
		return nil, nil, err
	}
	return t, p, nil
}

func commentEntry(c *comment.Comment, projectID, actorID uint, action activity.Action, details activity.Details) activity.Entry {
	if details == nil {
		details = activity.Details{}
	}
	details["ticket_id"] = c.TicketID()
	return activity.Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: activity.EntityComment,
		EntityID:   c.ID(),
		ProjectID:  &projectID,
		Details:    details,
	}
}

func ticketLink(t *ticket.Ticket) string {
	return fmt.Sprintf("/tickets/%d", t.ID())
}
