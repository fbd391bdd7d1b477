package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

type MarkAllReadUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewMarkAllReadUseCase(repo notification.Repository, logger logger.Interface) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{repo: repo, logger: logger}
}

// Execute returns how many notifications were flipped to read.
func (uc *MarkAllReadUseCase) Execute(ctx context.Context, recipientID uint) (int64, error) {
	count, err := uc.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		uc.logger.Errorw("failed to mark all notifications read", "recipient_id", recipientID, "error", err)
		return 0, access.Wrap(err, "failed to mark notifications read")
	}
	uc.logger.Infow("notifications marked read", "recipient_id", recipientID, "count", count)
	return count, nil
}
