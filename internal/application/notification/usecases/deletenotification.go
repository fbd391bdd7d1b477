package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type DeleteNotificationCommand struct {
	NotificationID uint
	RecipientID    uint
}

type DeleteNotificationUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewDeleteNotificationUseCase(repo notification.Repository, logger logger.Interface) *DeleteNotificationUseCase {
	return &DeleteNotificationUseCase{repo: repo, logger: logger}
}

func (uc *DeleteNotificationUseCase) Execute(ctx context.Context, cmd DeleteNotificationCommand) error {
	n, err := loadOwned(ctx, uc.repo, cmd.NotificationID, cmd.RecipientID)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, n.ID()); err != nil {
		uc.logger.Errorw("failed to delete notification", "notification_id", n.ID(), "error", err)
		return access.Wrap(err, "failed to delete notification")
	}
	return nil
}

type DeleteAllNotificationsUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewDeleteAllNotificationsUseCase(repo notification.Repository, logger logger.Interface) *DeleteAllNotificationsUseCase {
	return &DeleteAllNotificationsUseCase{repo: repo, logger: logger}
}

func (uc *DeleteAllNotificationsUseCase) Execute(ctx context.Context, recipientID uint) (int64, error) {
	count, err := uc.repo.DeleteAllForRecipient(ctx, recipientID)
	if err != nil {
		uc.logger.Errorw("failed to delete notifications", "recipient_id", recipientID, "error", err)
		return 0, access.Wrap(err, "failed to delete notifications")
	}
	uc.logger.Infow("notifications deleted", "recipient_id", recipientID, "count", count)
	return count, nil
}
