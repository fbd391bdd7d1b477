package usecases

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/application/notification/dto"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type ListNotificationsCommand struct {
	RecipientID uint
	UnreadOnly  bool
	Page        query.PageFilter
}

type ListNotificationsResult struct {
	Notifications []*dto.NotificationDTO
	Total         int64
	Page          int
	PageSize      int
}

type ListNotificationsUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.Repository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{repo: repo, logger: logger}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, cmd ListNotificationsCommand) (*ListNotificationsResult, error) {
	page := cmd.Page.Normalize()
	list, total, err := uc.repo.ListByRecipient(ctx, cmd.RecipientID, cmd.UnreadOnly, page)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "recipient_id", cmd.RecipientID, "error", err)
		return nil, access.Wrap(err, "failed to list notifications")
	}
	return &ListNotificationsResult{
		Notifications: dto.ToNotificationDTOs(list),
		Total:         total,
		Page:          page.Page,
		PageSize:      page.PageSize,
	}, nil
}
