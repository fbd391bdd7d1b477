package notification

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/notification/dto"
	"github.com/trackr-io/trackr/internal/application/notification/usecases"
)

type listExecutor interface {
	Execute(ctx context.Context, cmd usecases.ListNotificationsCommand) (*usecases.ListNotificationsResult, error)
}

// recipientExecutor covers the use cases keyed only by recipient: unread
// count, mark all read and delete all.
type recipientExecutor interface {
	Execute(ctx context.Context, recipientID uint) (int64, error)
}

type markReadExecutor interface {
	Execute(ctx context.Context, cmd usecases.MarkNotificationReadCommand) (*dto.NotificationDTO, error)
}

type deleteExecutor interface {
	Execute(ctx context.Context, cmd usecases.DeleteNotificationCommand) error
}
