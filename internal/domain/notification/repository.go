package notification

import (
	"context"

	"github.com/trackr-io/trackr/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uint) (*Notification, error)
	Update(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uint) error
	// ListByRecipient returns notifications newest first.
	ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, page query.PageFilter) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uint) (int64, error)
	DeleteAllForRecipient(ctx context.Context, recipientID uint) (int64, error)
}
