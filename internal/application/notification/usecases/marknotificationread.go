package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/notification/dto"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type MarkNotificationReadCommand struct {
	NotificationID uint
	RecipientID    uint
}

type MarkNotificationReadUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewMarkNotificationReadUseCase(repo notification.Repository, logger logger.Interface) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{repo: repo, logger: logger}
}

func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, cmd MarkNotificationReadCommand) (*dto.NotificationDTO, error) {
	n, err := loadOwned(ctx, uc.repo, cmd.NotificationID, cmd.RecipientID)
	if err != nil {
		return nil, err
	}

	if n.MarkRead() {
		if err := uc.repo.Update(ctx, n); err != nil {
			uc.logger.Errorw("failed to mark notification read", "notification_id", n.ID(), "error", err)
			return nil, access.Wrap(err, "failed to update notification")
		}
	}
	return dto.ToNotificationDTO(n), nil
}

// loadOwned returns not_found for a missing notification and forbidden for
// someone else's.
func loadOwned(ctx context.Context, repo notification.Repository, id, recipientID uint) (*notification.Notification, error) {
	n, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, access.Wrap(err, "failed to get notification")
	}
	if n == nil {
		return nil, errors.NewNotFoundError("notification not found")
	}
	if !n.BelongsTo(recipientID) {
		return nil, errors.NewForbiddenError("notification belongs to another user")
	}
	return n, nil
}
