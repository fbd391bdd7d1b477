package activity

import (
	"context"

	"github.com/trackr-io/trackr/internal/shared/query"
)

// Filter selects activities. Zero fields are ignored.
type Filter struct {
	ActorID    uint
	ProjectID  uint
	TeamID     uint
	EntityType EntityType
	EntityID   uint
	Page       query.PageFilter
}

type Repository interface {
	Create(ctx context.Context, a *Activity) error
	// List returns matches newest first.
	List(ctx context.Context, filter Filter) ([]*Activity, int64, error)
}
