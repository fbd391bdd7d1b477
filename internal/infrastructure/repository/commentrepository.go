package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/mappers"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	"github.com/trackr-io/trackr/internal/shared/db"
)

type CommentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CommentMapper
}

func NewCommentRepository(db *gorm.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{
		db:     db,
		mapper: mappers.NewCommentMapper(),
	}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, c *comment.Comment) error {
	model, err := r.mapper.ToModel(c)
	if err != nil {
		return fmt.Errorf("failed to map comment: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CommentRepositoryImpl) Update(ctx context.Context, c *comment.Comment) error {
	model, err := r.mapper.ToModel(c)
	if err != nil {
		return fmt.Errorf("failed to map comment: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.CommentModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, id uint) (*comment.Comment, error) {
	var model models.CommentModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *CommentRepositoryImpl) ListByTicket(ctx context.Context, ticketID uint) ([]*comment.Comment, error) {
	var rows []models.CommentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Scopes(db.OldestFirst()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	out := make([]*comment.Comment, 0, len(rows))
	for i := range rows {
		c, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CommentRepositoryImpl) DeleteByTicket(ctx context.Context, ticketIDs ...uint) error {
	if len(ticketIDs) == 0 {
		return nil
	}
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id IN ?", ticketIDs).Delete(&models.CommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}
