package ticket

import (
	"context"

	"github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/application/ticket/usecases"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error)
}

type TransitionStatusExecutor interface {
	Execute(ctx context.Context, cmd usecases.TransitionStatusCommand) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.DeleteTicketCommand) error
}

type TicketQueries interface {
	Get(ctx context.Context, actorID, ticketID uint) (*dto.TicketDTO, error)
	History(ctx context.Context, actorID, ticketID uint) ([]*dto.HistoryEntryDTO, error)
	List(ctx context.Context, cmd usecases.ListTicketsCommand) (*usecases.ListTicketsResult, error)
}

type WatcherService interface {
	Add(ctx context.Context, cmd usecases.WatcherCommand) (*dto.TicketDTO, error)
	Remove(ctx context.Context, cmd usecases.WatcherCommand) (*dto.TicketDTO, error)
}

type AttachmentService interface {
	Add(ctx context.Context, cmd usecases.AddAttachmentCommand) (*dto.AttachmentDTO, error)
	Remove(ctx context.Context, cmd usecases.RemoveAttachmentCommand) error
}
