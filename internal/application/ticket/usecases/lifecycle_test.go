package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/errors"
)

func TestUpdateTicket(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)
	tk.AddWatcher(e.dev2)
	tk.AddWatcher(e.reporter)
	ctx := context.Background()

	out, err := e.update().Execute(ctx, UpdateTicketCommand{
		ActorID:  e.reporter,
		TicketID: tk.ID(),
		Patch: ticket.Patch{
			Title:      ptr("Login fails on Safari"),
			Priority:   ptr("Critical"),
			AssigneeID: ptr(e.dev),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Critical", out.Priority)
	assert.Equal(t, &e.dev, out.AssigneeID)

	entries, _ := e.history.ListByTicket(ctx, tk.ID())
	require.Len(t, entries, 1)
	assert.Equal(t, ticket.ActionUpdated, entries[0].Action())
	assert.Len(t, entries[0].Changes(), 3)

	acts := e.activities.All()
	require.Len(t, acts, 1)
	assert.Equal(t, activity.ActionUpdated, acts[0].Action())

	assigned := e.notifications.For(e.dev)
	require.Len(t, assigned, 1)
	assert.Equal(t, notification.TypeTicketAssigned, assigned[0].Type())

	updates := e.notifications.For(e.dev2)
	require.Len(t, updates, 1)
	assert.Equal(t, notification.TypeTicketUpdate, updates[0].Type())
	assert.Empty(t, e.notifications.For(e.reporter))
}

func TestUpdateTicket_EmptyDiffIsNoop(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)

	_, err := e.update().Execute(context.Background(), UpdateTicketCommand{
		ActorID:  e.dev,
		TicketID: tk.ID(),
		Patch:    ticket.Patch{Title: ptr(tk.Title()), Status: ptr(tk.Status())},
	})
	require.NoError(t, err)
	assert.Zero(t, e.history.Len())
	assert.Empty(t, e.activities.All())
	assert.Zero(t, e.tx.Calls)
}

func TestUpdateTicket_RegistryRejection(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)

	for name, patch := range map[string]ticket.Patch{
		"status":   {Status: ptr("Blocked")},
		"type":     {Type: ptr("Story")},
		"priority": {Priority: ptr("Urgent"), Title: ptr("changed")},
		"assignee": {AssigneeID: ptr(e.outsider)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := e.update().Execute(context.Background(), UpdateTicketCommand{ActorID: e.reporter, TicketID: tk.ID(), Patch: patch})
			assert.True(t, errors.IsValidationError(err))
		})
	}

	got, _ := e.tickets.GetByID(context.Background(), tk.ID())
	assert.Equal(t, "Login fails", got.Title())
	assert.Equal(t, "To Do", got.Status())
	assert.Nil(t, got.AssigneeID())
	assert.Zero(t, e.history.Len())
}

func TestUpdateTicket_NonMemberLeavesTicketUnchanged(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)
	ctx := context.Background()

	_, err := e.update().Execute(ctx, UpdateTicketCommand{ActorID: e.outsider, TicketID: tk.ID(), Patch: ticket.Patch{Title: ptr("hijacked")}})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = e.assign().Execute(ctx, AssignTicketCommand{ActorID: e.outsider, TicketID: tk.ID(), AssigneeID: ptr(e.dev)})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = e.transition().Execute(ctx, TransitionStatusCommand{ActorID: e.outsider, TicketID: tk.ID(), Status: "Done"})
	assert.True(t, errors.IsForbiddenError(err))

	got, _ := e.tickets.GetByID(ctx, tk.ID())
	assert.Equal(t, "Login fails", got.Title())
	assert.Equal(t, "To Do", got.Status())
	assert.Nil(t, got.AssigneeID())
	assert.Zero(t, e.history.Len())
}

func TestUpdateTicket_UnknownTicket(t *testing.T) {
	e := newEnv(t)
	_, err := e.update().Execute(context.Background(), UpdateTicketCommand{ActorID: e.reporter, TicketID: 42})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestAssignTicket_Reassign(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, ptr(e.dev))
	ctx := context.Background()

	out, err := e.assign().Execute(ctx, AssignTicketCommand{ActorID: e.reporter, TicketID: tk.ID(), AssigneeID: ptr(e.dev2)})
	require.NoError(t, err)
	assert.Equal(t, &e.dev2, out.AssigneeID)
	assert.Contains(t, out.Watchers, e.dev2)

	entries, _ := e.history.ListByTicket(ctx, tk.ID())
	require.Len(t, entries, 1)
	assert.Equal(t, ticket.ActionAssigned, entries[0].Action())
	assert.Equal(t, ticket.FieldChange{From: e.dev, To: e.dev2}, entries[0].Changes()[ticket.FieldAssignee])

	assert.Equal(t, 1, e.notifications.Len())
	require.Len(t, e.notifications.For(e.dev2), 1)
	assert.Empty(t, e.notifications.For(e.dev))
}

func TestAssignTicket_Unassign(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, ptr(e.dev))

	out, err := e.assign().Execute(context.Background(), AssignTicketCommand{ActorID: e.reporter, TicketID: tk.ID()})
	require.NoError(t, err)
	assert.Nil(t, out.AssigneeID)
	assert.Equal(t, 1, e.history.Len())
	assert.Zero(t, e.notifications.Len())
}

func TestAssignTicket_SameAssigneeAddsWatcherOnly(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, ptr(e.dev))

	out, err := e.assign().Execute(context.Background(), AssignTicketCommand{ActorID: e.reporter, TicketID: tk.ID(), AssigneeID: ptr(e.dev)})
	require.NoError(t, err)
	assert.Equal(t, []uint{e.dev}, out.Watchers)
	assert.Zero(t, e.history.Len())
	assert.Zero(t, e.notifications.Len())
}

func TestAssignTicket_RequiresMemberButSurvivesRemoval(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)
	ctx := context.Background()

	_, err := e.assign().Execute(ctx, AssignTicketCommand{ActorID: e.reporter, TicketID: tk.ID(), AssigneeID: ptr(e.outsider)})
	assert.True(t, errors.IsValidationError(err))

	_, err = e.assign().Execute(ctx, AssignTicketCommand{ActorID: e.reporter, TicketID: tk.ID(), AssigneeID: ptr(e.dev)})
	require.NoError(t, err)

	_, err = e.project.RemoveMember(e.dev)
	require.NoError(t, err)
	require.NoError(t, e.projects.Update(ctx, e.project))

	got, _ := e.tickets.GetByID(ctx, tk.ID())
	assert.Equal(t, &e.dev, got.AssigneeID())
}

func TestTransitionStatus(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, ptr(e.dev))
	ctx := context.Background()

	out, err := e.transition().Execute(ctx, TransitionStatusCommand{ActorID: e.dev, TicketID: tk.ID(), Status: "In Progress"})
	require.NoError(t, err)
	assert.Equal(t, "In Progress", out.Status)

	entries, _ := e.history.ListByTicket(ctx, tk.ID())
	require.Len(t, entries, 1)
	assert.Equal(t, ticket.ActionStatusChanged, entries[0].Action())

	acts := e.activities.All()
	require.Len(t, acts, 1)
	assert.Equal(t, "To Do", acts[0].Details()["from"])
	assert.Equal(t, "In Progress", acts[0].Details()["to"])

	require.Len(t, e.notifications.For(e.reporter), 1)
	assert.Equal(t, notification.TypeTicketStatusChanged, e.notifications.For(e.reporter)[0].Type())
	assert.Empty(t, e.notifications.For(e.dev))

	_, err = e.transition().Execute(ctx, TransitionStatusCommand{ActorID: e.dev, TicketID: tk.ID(), Status: "In Progress"})
	require.NoError(t, err)
	assert.Equal(t, 1, e.history.Len())
}

func TestTransitionStatus_Invalid(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)

	_, err := e.transition().Execute(context.Background(), TransitionStatusCommand{ActorID: e.dev, TicketID: tk.ID(), Status: "Blocked"})
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, "To Do", tk.Status())
	assert.Zero(t, e.history.Len())
}

func TestHistoryOnlyGrows(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)
	ctx := context.Background()

	steps := []func() error{
		func() error {
			_, err := e.transition().Execute(ctx, TransitionStatusCommand{ActorID: e.dev, TicketID: tk.ID(), Status: "Review"})
			return err
		},
		func() error {
			_, err := e.assign().Execute(ctx, AssignTicketCommand{ActorID: e.dev, TicketID: tk.ID(), AssigneeID: ptr(e.dev2)})
			return err
		},
		func() error {
			_, err := e.update().Execute(ctx, UpdateTicketCommand{ActorID: e.dev, TicketID: tk.ID(), Patch: ticket.Patch{Labels: &[]string{"ui"}}})
			return err
		},
		func() error {
			_, err := e.transition().Execute(ctx, TransitionStatusCommand{ActorID: e.dev, TicketID: tk.ID(), Status: "Done"})
			return err
		},
	}

	var previous []*ticket.HistoryEntry
	for i, step := range steps {
		require.NoError(t, step())
		entries, err := e.history.ListByTicket(ctx, tk.ID())
		require.NoError(t, err)
		require.Len(t, entries, i+1)
		for j, old := range previous {
			assert.Equal(t, old.ID(), entries[j].ID())
			assert.Equal(t, old.Changes(), entries[j].Changes())
		}
		previous = entries
	}
}
