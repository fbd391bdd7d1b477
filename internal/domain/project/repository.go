package project

import (
	"context"

	"github.com/trackr-io/trackr/internal/shared/query"
)

// VisibilityQuery describes which projects a caller may list. The
// repository turns it into a storage filter.
type VisibilityQuery struct {
	All          bool
	UserID       uint
	IncludeOwned bool
}

type ListFilter struct {
	Visibility VisibilityQuery
	Status     *Status
	Search     string
	Page       query.PageFilter
}

type Repository interface {
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Project, error)
	KeyExists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Project, int64, error)
	// VisibleIDs returns the IDs of every project matched by v.
	VisibleIDs(ctx context.Context, v VisibilityQuery) ([]uint, error)
	// ShareMembership reports whether both users are members of a common project.
	ShareMembership(ctx context.Context, userA, userB uint) (bool, error)
}
