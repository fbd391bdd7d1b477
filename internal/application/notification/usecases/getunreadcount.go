package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type GetUnreadCountUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewGetUnreadCountUseCase(repo notification.Repository, logger logger.Interface) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{repo: repo, logger: logger}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, recipientID uint) (int64, error) {
	count, err := uc.repo.CountUnread(ctx, recipientID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "recipient_id", recipientID, "error", err)
		return 0, access.Wrap(err, "failed to count unread notifications")
	}
	return count, nil
}
