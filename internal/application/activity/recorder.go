// Package activity writes and reads the audit trail.
package activity

import (
	"context"

	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

// Outcome reports how a Record call went. Callers are expected to ignore it.
type Outcome struct {
	ActivityID uint
	Err        error
}

func (o Outcome) OK() bool { return o.Err == nil }

// Recorder writes activity entries on a best-effort basis: a failure is
// logged and never propagated to the operation that triggered it.
type Recorder struct {
	repo   activity.Repository
	logger logger.Interface
}

func NewRecorder(repo activity.Repository, logger logger.Interface) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

func (r *Recorder) Record(ctx context.Context, e activity.Entry) Outcome {
	a, err := activity.NewActivity(e)
	if err != nil {
		r.logger.Warnw("invalid activity entry",
			"action", e.Action,
			"entity_type", e.EntityType,
			"entity_id", e.EntityID,
			"error", err,
		)
		return Outcome{Err: err}
	}

	if err := r.repo.Create(ctx, a); err != nil {
		r.logger.Warnw("failed to record activity",
			"action", e.Action,
			"entity_type", e.EntityType,
			"entity_id", e.EntityID,
			"actor_id", e.ActorID,
			"error", err,
		)
		return Outcome{Err: err}
	}
	return Outcome{ActivityID: a.ID()}
}
