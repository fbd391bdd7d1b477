package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
)

func TestCreateTicket(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	out, err := e.create().Execute(ctx, CreateTicketCommand{
		ActorID:    e.reporter,
		ProjectID:  e.project.ID(),
		Title:      "Login fails on Safari",
		Type:       "Bug",
		Status:     "To Do",
		Priority:   "High",
		AssigneeID: ptr(e.dev),
		Labels:     []string{"auth", "auth", " safari "},
	})
	require.NoError(t, err)
	assert.Equal(t, "CP-1", out.TicketNumber)
	assert.Equal(t, e.reporter, out.ReporterID)
	assert.Equal(t, []string{"auth", "safari"}, out.Labels)
	assert.Empty(t, out.Watchers)

	entries, err := e.history.ListByTicket(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ticket.ActionCreated, entries[0].Action())

	acts := e.activities.All()
	require.Len(t, acts, 1)
	assert.Equal(t, out.ID, acts[0].EntityID())

	got := e.notifications.For(e.dev)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypeTicketAssigned, got[0].Type())
	assert.Empty(t, e.notifications.For(e.reporter))

	second, err := e.create().Execute(ctx, CreateTicketCommand{
		ActorID: e.dev, ProjectID: e.project.ID(), Title: "Second",
		Type: "Bug", Status: "To Do", Priority: "Low",
	})
	require.NoError(t, err)
	assert.Equal(t, "CP-2", second.TicketNumber)
	assert.Equal(t, "Bug", second.Type)
	assert.Equal(t, "To Do", second.Status)
	assert.Equal(t, "Low", second.Priority)
}

func TestCreateTicket_InvalidStatusWritesNothing(t *testing.T) {
	e := newEnv(t)

	_, err := e.create().Execute(context.Background(), CreateTicketCommand{
		ActorID:    e.reporter,
		ProjectID:  e.project.ID(),
		Title:      "Login fails",
		Type:       "Bug",
		Status:     "Blocked",
		Priority:   "High",
		AssigneeID: ptr(e.dev),
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.(*errors.AppError).Details, "To Do")

	assert.Zero(t, e.tickets.Count())
	assert.Zero(t, e.history.Len())
	assert.Empty(t, e.activities.All())
	assert.Zero(t, e.notifications.Len())
	assert.Zero(t, e.tx.Calls)
}

func TestCreateTicket_MissingStatusWritesNothing(t *testing.T) {
	e := newEnv(t)

	_, err := e.create().Execute(context.Background(), CreateTicketCommand{
		ActorID:    e.reporter,
		ProjectID:  e.project.ID(),
		Title:      "Login fails",
		Type:       "Bug",
		Priority:   "High",
		AssigneeID: ptr(e.dev),
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "status is required")

	assert.Zero(t, e.tickets.Count())
	assert.Zero(t, e.history.Len())
	assert.Empty(t, e.activities.All())
	assert.Zero(t, e.notifications.Len())
	assert.Zero(t, e.tx.Calls)
}

func TestCreateTicket_Rules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	valid := func(mut func(*CreateTicketCommand)) CreateTicketCommand {
		cmd := CreateTicketCommand{
			ActorID: e.reporter, ProjectID: e.project.ID(), Title: "x",
			Type: "Bug", Status: "To Do", Priority: "High",
		}
		mut(&cmd)
		return cmd
	}

	tests := []struct {
		name  string
		cmd   CreateTicketCommand
		check func(error) bool
	}{
		{"non member", valid(func(c *CreateTicketCommand) { c.ActorID = e.outsider }), errors.IsForbiddenError},
		{"unknown project", valid(func(c *CreateTicketCommand) { c.ProjectID = 99 }), errors.IsNotFoundError},
		{"invalid type", valid(func(c *CreateTicketCommand) { c.Type = "Story" }), errors.IsValidationError},
		{"invalid priority", valid(func(c *CreateTicketCommand) { c.Priority = "Urgent" }), errors.IsValidationError},
		{"missing type", valid(func(c *CreateTicketCommand) { c.Type = "" }), errors.IsValidationError},
		{"missing priority", valid(func(c *CreateTicketCommand) { c.Priority = "" }), errors.IsValidationError},
		{"non member assignee", valid(func(c *CreateTicketCommand) { c.AssigneeID = ptr(e.outsider) }), errors.IsValidationError},
		{"empty title", valid(func(c *CreateTicketCommand) { c.Title = "  " }), errors.IsValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.create().Execute(ctx, tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
	assert.Zero(t, e.tickets.Count())
}

func TestCreateTicket_TransactionFailure(t *testing.T) {
	e := newEnv(t)
	e.tickets.CreateErr = assert.AnError

	_, err := e.create().Execute(context.Background(), bugCommand(e.reporter, e.project.ID(), "x"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeInternal, err.(*errors.AppError).Type)
	assert.Zero(t, e.history.Len())
	assert.Empty(t, e.activities.All())
}

func TestCreateTicket_ActivityFailureDoesNotFail(t *testing.T) {
	e := newEnv(t)
	e.activities.CreateErr = assert.AnError

	out, err := e.create().Execute(context.Background(), bugCommand(e.reporter, e.project.ID(), "x"))
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
}
