package comment

import "context"

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Comment, error)
	// ListByTicket returns comments oldest first.
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
	DeleteByTicket(ctx context.Context, ticketIDs ...uint) error
}
