package mappers

import (
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
)

type CommentMapper interface {
	ToModel(c *comment.Comment) (*models.CommentModel, error)
	ToDomain(m *models.CommentModel) (*comment.Comment, error)
}

type CommentMapperImpl struct{}

func NewCommentMapper() CommentMapper {
	return &CommentMapperImpl{}
}

func (CommentMapperImpl) ToModel(c *comment.Comment) (*models.CommentModel, error) {
	attachments, err := toJSON(c.Attachments())
	if err != nil {
		return nil, err
	}
	mentions, err := toJSON(c.Mentions())
	if err != nil {
		return nil, err
	}
	edits, err := toJSON(c.EditHistory())
	if err != nil {
		return nil, err
	}
	return &models.CommentModel{
		ID:          c.ID(),
		TicketID:    c.TicketID(),
		AuthorID:    c.AuthorID(),
		Content:     c.Content(),
		Attachments: attachments,
		Mentions:    mentions,
		IsEdited:    c.IsEdited(),
		EditHistory: edits,
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}, nil
}

func (CommentMapperImpl) ToDomain(m *models.CommentModel) (*comment.Comment, error) {
	var attachments []ticket.Attachment
	var mentions []string
	var edits []comment.Edit
	if err := fromJSON(m.Attachments, &attachments, "attachments"); err != nil {
		return nil, err
	}
	if err := fromJSON(m.Mentions, &mentions, "mentions"); err != nil {
		return nil, err
	}
	if err := fromJSON(m.EditHistory, &edits, "edit_history"); err != nil {
		return nil, err
	}
	return comment.ReconstructComment(m.ID, m.TicketID, m.AuthorID, m.Content, attachments, mentions, m.IsEdited, edits, m.CreatedAt, m.UpdatedAt)
}
