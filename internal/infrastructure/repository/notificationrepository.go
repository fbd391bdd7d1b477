package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/mappers"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	"github.com/trackr-io/trackr/internal/shared/biztime"
	"github.com/trackr-io/trackr/internal/shared/db"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepositoryImpl {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mappers.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *notification.Notification) error {
	model := r.mapper.ToModel(n)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	n.SetID(model.ID)
	return nil
}

func (r *NotificationRepositoryImpl) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *NotificationRepositoryImpl) Update(ctx context.Context, n *notification.Notification) error {
	if err := db.GetTxFromContext(ctx, r.db).Save(r.mapper.ToModel(n)).Error; err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.NotificationModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, page query.PageFilter) ([]*notification.Notification, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.NotificationModel{}).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	var rows []models.NotificationModel
	if err := q.Scopes(db.NewestFirst(), pageScope(page)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	out := make([]*notification.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, r.mapper.ToDomain(&rows[i]))
	}
	return out, total, nil
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.NotificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.NotificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]any{"is_read": true, "read_at": biztime.NowUTC()})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *NotificationRepositoryImpl) DeleteAllForRecipient(ctx context.Context, recipientID uint) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("recipient_id = ?", recipientID).Delete(&models.NotificationModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}
