package ticket

import (
	"context"

	"github.com/trackr-io/trackr/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	List(ctx context.Context, filter ListFilter) ([]*Ticket, int64, error)
	// IDsByProject returns every ticket ID of a project.
	IDsByProject(ctx context.Context, projectID uint) ([]uint, error)
	DeleteByProject(ctx context.Context, projectID uint) error
}

// ListFilter narrows a ticket list. ProjectIDs restricts to a visible set
// when ProjectID is zero.
type ListFilter struct {
	ProjectID  uint
	ProjectIDs []uint
	Status     string
	Priority   string
	Type       string
	AssigneeID *uint
	Unassigned bool
	ReporterID *uint
	Search     string
	Page       query.PageFilter
}

// HistoryRepository is append-only.
type HistoryRepository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*HistoryEntry, error)
	// DeleteByTicket is only used when the ticket itself is deleted.
	DeleteByTicket(ctx context.Context, ticketIDs ...uint) error
}
