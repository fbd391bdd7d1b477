package team

import (
	"context"

	"github.com/trackr-io/trackr/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, t *Team) error
	Update(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uint) (*Team, error)
	// ListForMember returns the teams userID belongs to.
	ListForMember(ctx context.Context, userID uint, page query.PageFilter) ([]*Team, int64, error)
	ShareMembership(ctx context.Context, userA, userB uint) (bool, error)
}
