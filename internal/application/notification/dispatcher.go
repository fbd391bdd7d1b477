// Package notification fans messages out to recipients as in-app records.
package notification

import (
	"context"

	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/shared/goroutine"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/utils/setutil"
)

// EmailSink mirrors a stored notification to the recipient's mailbox.
type EmailSink interface {
	Deliver(ctx context.Context, n *notification.Notification) error
}

// DispatchResult counts per-recipient outcomes. Failed recipients are
// logged, never returned as an error.
type DispatchResult struct {
	Sent   []uint
	Failed []uint
}

type Dispatcher struct {
	repo   notification.Repository
	email  EmailSink
	logger logger.Interface
}

func NewDispatcher(repo notification.Repository, logger logger.Interface) *Dispatcher {
	return &Dispatcher{repo: repo, logger: logger}
}

// WithEmail enables best-effort email mirroring.
func (d *Dispatcher) WithEmail(sink EmailSink) *Dispatcher {
	d.email = sink
	return d
}

// Dispatch stores one notification per distinct recipient. Recipient 0 and
// the sender are skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, msg notification.Message, recipients ...uint) DispatchResult {
	targets := setutil.NewUintSet(recipients...)
	targets.Remove(0)
	if msg.SenderID != 0 {
		targets.Remove(msg.SenderID)
	}

	var result DispatchResult
	for _, recipientID := range targets.ToSlice() {
		n, err := notification.NewNotification(recipientID, msg)
		if err == nil {
			err = d.repo.Create(ctx, n)
		}
		if err != nil {
			d.logger.Warnw("failed to create notification",
				"recipient_id", recipientID,
				"type", msg.Type,
				"entity_type", msg.EntityType,
				"entity_id", msg.EntityID,
				"error", err,
			)
			result.Failed = append(result.Failed, recipientID)
			continue
		}
		result.Sent = append(result.Sent, recipientID)
		d.mirror(ctx, n)
	}
	return result
}

func (d *Dispatcher) mirror(ctx context.Context, n *notification.Notification) {
	if d.email == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	goroutine.SafeGo(d.logger, "notification-email", func() {
		if err := d.email.Deliver(detached, n); err != nil {
			d.logger.Warnw("failed to mirror notification to email",
				"notification_id", n.ID(),
				"recipient_id", n.RecipientID(),
				"error", err,
			)
		}
	})
}
