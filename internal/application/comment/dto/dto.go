package dto

import (
	"time"

	ticketdto "github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/shared/services/markdown"
)

type EditDTO struct {
	Content  string    `json:"content"`
	EditedAt time.Time `json:"edited_at"`
}

type CommentDTO struct {
	ID          uint                      `json:"id"`
	TicketID    uint                      `json:"ticket_id"`
	AuthorID    uint                      `json:"author_id"`
	Content     string                    `json:"content"`
	ContentHTML string                    `json:"content_html"`
	Mentions    []string                  `json:"mentions"`
	Attachments []ticketdto.AttachmentDTO `json:"attachments"`
	IsEdited    bool                      `json:"is_edited"`
	EditHistory []EditDTO                 `json:"edit_history"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// ToCommentDTO renders the markdown content with r. A render failure leaves
// ContentHTML empty.
func ToCommentDTO(c *comment.Comment, r markdown.Renderer) *CommentDTO {
	if c == nil {
		return nil
	}
	edits := make([]EditDTO, 0, len(c.EditHistory()))
	for _, e := range c.EditHistory() {
		edits = append(edits, EditDTO{Content: e.Content, EditedAt: e.EditedAt})
	}
	out := &CommentDTO{
		ID:          c.ID(),
		TicketID:    c.TicketID(),
		AuthorID:    c.AuthorID(),
		Content:     c.Content(),
		Mentions:    c.Mentions(),
		Attachments: ticketdto.ToAttachmentDTOs(c.Attachments()),
		IsEdited:    c.IsEdited(),
		EditHistory: edits,
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
	if r != nil {
		if html, err := r.Render(c.Content()); err == nil {
			out.ContentHTML = html
		}
	}
	return out
}

func ToCommentDTOs(list []*comment.Comment, r markdown.Renderer) []*CommentDTO {
	out := make([]*CommentDTO, 0, len(list))
	for _, c := range list {
		out = append(out, ToCommentDTO(c, r))
	}
	return out
}
