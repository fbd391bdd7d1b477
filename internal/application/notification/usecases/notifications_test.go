package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/testutil"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

func seed(t *testing.T, repo *testutil.NotificationRepository, recipientID uint, count int) []*notification.Notification {
	t.Helper()
	var out []*notification.Notification
	for i := 0; i < count; i++ {
		n, err := notification.NewNotification(recipientID, notification.Message{
			Type:  notification.TypeSystem,
			Title: "Maintenance",
			Body:  "Scheduled downtime tonight",
		})
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), n))
		out = append(out, n)
	}
	return out
}

func TestListNotifications(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	seed(t, repo, 1, 3)
	seed(t, repo, 2, 1)
	uc := NewListNotificationsUseCase(repo, logger.NewNop())

	res, err := uc.Execute(context.Background(), ListNotificationsCommand{
		RecipientID: 1,
		Page:        query.PageFilter{Page: 1, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	require.Len(t, res.Notifications, 2)
	assert.Greater(t, res.Notifications[0].ID, res.Notifications[1].ID)
}

func TestUnreadCountAndMarkAll(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	seed(t, repo, 1, 3)
	ctx := context.Background()

	count, err := NewGetUnreadCountUseCase(repo, logger.NewNop()).Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	flipped, err := NewMarkAllReadUseCase(repo, logger.NewNop()).Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), flipped)

	count, err = NewGetUnreadCountUseCase(repo, logger.NewNop()).Execute(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkNotificationRead(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	n := seed(t, repo, 1, 1)[0]
	uc := NewMarkNotificationReadUseCase(repo, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, MarkNotificationReadCommand{NotificationID: n.ID(), RecipientID: 2})
	assert.True(t, errors.IsForbiddenError(err))
	assert.False(t, n.IsRead())

	_, err = uc.Execute(ctx, MarkNotificationReadCommand{NotificationID: 404, RecipientID: 1})
	assert.True(t, errors.IsNotFoundError(err))

	out, err := uc.Execute(ctx, MarkNotificationReadCommand{NotificationID: n.ID(), RecipientID: 1})
	require.NoError(t, err)
	assert.True(t, out.Read)
	assert.NotNil(t, out.ReadAt)
}

func TestDeleteNotification(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	n := seed(t, repo, 1, 1)[0]
	uc := NewDeleteNotificationUseCase(repo, logger.NewNop())
	ctx := context.Background()

	err := uc.Execute(ctx, DeleteNotificationCommand{NotificationID: n.ID(), RecipientID: 2})
	assert.True(t, errors.IsForbiddenError(err))
	assert.Equal(t, 1, repo.Len())

	require.NoError(t, uc.Execute(ctx, DeleteNotificationCommand{NotificationID: n.ID(), RecipientID: 1}))
	assert.Zero(t, repo.Len())
}

func TestDeleteAllNotifications(t *testing.T) {
	repo := testutil.NewNotificationRepository()
	seed(t, repo, 1, 2)
	seed(t, repo, 2, 1)

	count, err := NewDeleteAllNotificationsUseCase(repo, logger.NewNop()).Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 1, repo.Len())
}
