// Package ports lists the collaborators use cases depend on beyond their
// repositories.
package ports

import (
	"context"

	appactivity "github.com/trackr-io/trackr/internal/application/activity"
	appnotification "github.com/trackr-io/trackr/internal/application/notification"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/notification"
)

// TransactionManager is implemented by db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ActivityRecorder is implemented by activity.Recorder.
type ActivityRecorder interface {
	Record(ctx context.Context, e activity.Entry) appactivity.Outcome
}

// Notifier is implemented by notification.Dispatcher.
type Notifier interface {
	Dispatch(ctx context.Context, msg notification.Message, recipients ...uint) appnotification.DispatchResult
}

// PolicyEnforcer checks global role permissions.
type PolicyEnforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

// Global permission objects and actions.
const (
	ResourceProject = "project"
	ResourceUser    = "user"

	ActionCreate = "create"
	ActionManage = "manage"
)
