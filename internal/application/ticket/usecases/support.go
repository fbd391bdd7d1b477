package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/trackr-io/trackr/internal/application/common/access"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
)

func loadTicket(ctx context.Context, repo ticket.Repository, ticketID uint) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, access.Wrap(err, "failed to get ticket")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	return t, nil
}

// loadForMember returns the ticket and its project once actorID is known
// to be a project member.
func loadForMember(ctx context.Context, tickets ticket.Repository, projects project.Repository, ticketID, actorID uint) (*ticket.Ticket, *project.Project, error) {
	t, err := loadTicket(ctx, tickets, ticketID)
	if err != nil {
		return nil, nil, err
	}
	p, err := access.ProjectMember(ctx, projects, t.ProjectID(), actorID)
	if err != nil {
		return nil, nil, err
	}
	return t, p, nil
}

// validateField checks value against the project's registry for kind.
func validateField(p *project.Project, kind project.ConfigKind, value string) error {
	if !p.Validate(kind, value) {
		return errors.NewValidationError(
			fmt.Sprintf("invalid ticket %s %q", kind, value),
			"valid values: "+strings.Join(p.ValidNames(kind), ", "),
		)
	}
	return nil
}

func requireMember(p *project.Project, userID uint, what string) error {
	if !p.IsMember(userID) {
		return errors.NewValidationError(what + " must be a member of the project")
	}
	return nil
}

func ticketEntry(t *ticket.Ticket, actorID uint, action activity.Action, details activity.Details) activity.Entry {
	pid := t.ProjectID()
	return activity.Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: activity.EntityTicket,
		EntityID:   t.ID(),
		ProjectID:  &pid,
		Details:    details,
	}
}

func ticketLink(t *ticket.Ticket) string {
	return fmt.Sprintf("/tickets/%d", t.ID())
}

func ticketLabel(t *ticket.Ticket) string {
	return fmt.Sprintf("%s: %s", t.Number(), t.Title())
}

func appendHistory(ctx context.Context, repo ticket.HistoryRepository, t *ticket.Ticket, actorID uint, action ticket.HistoryAction, changes ticket.Changes) error {
	entry, err := ticket.NewHistoryEntry(t.ID(), actorID, action, changes)
	if err != nil {
		return err
	}
	return repo.Append(ctx, entry)
}

// changesDetail flattens Changes for the activity log.
func changesDetail(changes ticket.Changes) map[string]any {
	out := make(map[string]any, len(changes))
	for field, c := range changes {
		out[field] = map[string]any{"from": c.From, "to": c.To}
	}
	return out
}
