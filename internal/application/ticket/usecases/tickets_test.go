package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/testutil"
	"github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/errors"
)

func TestDeleteTicket(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := NewDeleteTicketUseCase(e.tickets, e.history, e.comments, e.projects, e.tx, e.recorder, e.log)

	tk := createVia(t, e, e.reporter, e.project.ID(), "Crash on save")
	c, err := comment.NewComment(tk.ID(), e.dev, "looking into it", nil)
	require.NoError(t, err)
	require.NoError(t, e.comments.Create(ctx, c))

	err = uc.Execute(ctx, DeleteTicketCommand{ActorID: e.dev, TicketID: tk.ID()})
	assert.True(t, errors.IsForbiddenError(err))

	require.NoError(t, uc.Execute(ctx, DeleteTicketCommand{ActorID: e.reporter, TicketID: tk.ID()}))
	assert.Zero(t, e.tickets.Count())
	assert.Zero(t, e.history.Len())
	assert.Zero(t, e.comments.Len())

	err = uc.Execute(ctx, DeleteTicketCommand{ActorID: e.reporter, TicketID: tk.ID()})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestDeleteTicket_ReporterWithoutAdminRole(t *testing.T) {
	e := newEnv(t)
	uc := NewDeleteTicketUseCase(e.tickets, e.history, e.comments, e.projects, e.tx, e.recorder, e.log)
	tk := createVia(t, e, e.dev, e.project.ID(), "Typo in footer")

	require.NoError(t, uc.Execute(context.Background(), DeleteTicketCommand{ActorID: e.dev, TicketID: tk.ID()}))
	assert.Zero(t, e.tickets.Count())
}

func TestWatchers(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)
	uc := NewWatchersUseCase(e.tickets, e.projects, e.recorder, e.log)
	ctx := context.Background()

	out, err := uc.Add(ctx, WatcherCommand{ActorID: e.dev, TicketID: tk.ID()})
	require.NoError(t, err)
	assert.Equal(t, []uint{e.dev}, out.Watchers)

	out, err = uc.Add(ctx, WatcherCommand{ActorID: e.dev, TicketID: tk.ID()})
	require.NoError(t, err)
	assert.Equal(t, []uint{e.dev}, out.Watchers)

	_, err = uc.Add(ctx, WatcherCommand{ActorID: e.dev, TicketID: tk.ID(), UserID: e.outsider})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Add(ctx, WatcherCommand{ActorID: e.outsider, TicketID: tk.ID()})
	assert.True(t, errors.IsForbiddenError(err))

	out, err = uc.Remove(ctx, WatcherCommand{ActorID: e.dev2, TicketID: tk.ID()})
	require.NoError(t, err)
	assert.Equal(t, []uint{e.dev}, out.Watchers)

	out, err = uc.Remove(ctx, WatcherCommand{ActorID: e.reporter, TicketID: tk.ID(), UserID: e.dev})
	require.NoError(t, err)
	assert.Empty(t, out.Watchers)

	_, err = uc.Remove(ctx, WatcherCommand{ActorID: e.outsider, TicketID: tk.ID(), UserID: e.dev})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestWatchers_RecordsActivity(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)
	uc := NewWatchersUseCase(e.tickets, e.projects, e.recorder, e.log)
	ctx := context.Background()

	_, err := uc.Add(ctx, WatcherCommand{ActorID: e.dev, TicketID: tk.ID()})
	require.NoError(t, err)
	_, err = uc.Add(ctx, WatcherCommand{ActorID: e.dev, TicketID: tk.ID()})
	require.NoError(t, err)
	_, err = uc.Remove(ctx, WatcherCommand{ActorID: e.reporter, TicketID: tk.ID(), UserID: e.dev})
	require.NoError(t, err)
	_, err = uc.Remove(ctx, WatcherCommand{ActorID: e.reporter, TicketID: tk.ID(), UserID: e.dev})
	require.NoError(t, err)

	acts := e.activities.All()
	require.Len(t, acts, 2, "no-op calls are not recorded")
	assert.Equal(t, activity.ActionUpdated, acts[0].Action())
	assert.Equal(t, e.dev, acts[0].ActorID())
	assert.Equal(t, tk.ID(), acts[0].EntityID())
	assert.Equal(t, "added_watcher", acts[0].Details()["action"])
	assert.Equal(t, e.reporter, acts[1].ActorID())
	assert.Equal(t, "removed_watcher", acts[1].Details()["action"])
}

func TestWatchers_SaveFailureRecordsNothing(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)
	e.tickets.UpdateErr = assert.AnError

	_, err := NewWatchersUseCase(e.tickets, e.projects, e.recorder, e.log).Add(context.Background(), WatcherCommand{ActorID: e.dev, TicketID: tk.ID()})
	require.Error(t, err)
	assert.Empty(t, e.activities.All())
}

func TestWatchers_SelfRemovalAfterLeavingProject(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)
	tk.AddWatcher(e.dev)
	tk.AddWatcher(e.dev2)
	_, err := e.project.RemoveMember(e.dev2)
	require.NoError(t, err)
	uc := NewWatchersUseCase(e.tickets, e.projects, e.recorder, e.log)
	ctx := context.Background()

	out, err := uc.Remove(ctx, WatcherCommand{ActorID: e.dev2, TicketID: tk.ID()})
	require.NoError(t, err)
	assert.Equal(t, &dto.TicketDTO{ID: tk.ID(), Watchers: []uint{}}, out, "former members see no ticket details")
	assert.Equal(t, []uint{e.dev}, tk.Watchers())

	_, err = uc.Remove(ctx, WatcherCommand{ActorID: e.dev2, TicketID: tk.ID()})
	assert.True(t, errors.IsForbiddenError(err), "no longer a watcher")

	_, err = uc.Remove(ctx, WatcherCommand{ActorID: e.outsider, TicketID: tk.ID()})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestQueryTickets(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	first := e.seedTicket(t, ptr(e.dev))
	second := e.seedTicket(t, nil)
	billing := testutil.SeedProject(t, e.projects, "Billing", "BIL", e.reporter)
	other := createVia(t, e, e.reporter, billing.ID(), "Invoice rounding")
	uc := NewQueryTicketsUseCase(e.tickets, e.history, e.projects, e.log)

	got, err := uc.Get(ctx, e.dev, first.ID())
	require.NoError(t, err)
	assert.Equal(t, first.Number(), got.TicketNumber)

	_, err = uc.Get(ctx, e.outsider, first.ID())
	assert.True(t, errors.IsForbiddenError(err))

	res, err := uc.List(ctx, ListTicketsCommand{ActorID: e.dev, ActorRole: authorization.RoleDeveloper})
	require.NoError(t, err)
	require.Len(t, res.Tickets, 2)
	assert.Equal(t, second.ID(), res.Tickets[0].ID)

	res, err = uc.List(ctx, ListTicketsCommand{ActorID: e.dev, ActorRole: authorization.RoleDeveloper, Unassigned: true})
	require.NoError(t, err)
	require.Len(t, res.Tickets, 1)
	assert.Equal(t, second.ID(), res.Tickets[0].ID)

	res, err = uc.List(ctx, ListTicketsCommand{ActorID: e.dev, ActorRole: authorization.RoleDeveloper, AssigneeID: ptr(e.dev)})
	require.NoError(t, err)
	require.Len(t, res.Tickets, 1)

	res, err = uc.List(ctx, ListTicketsCommand{ActorID: e.reporter, ActorRole: authorization.RoleAdmin})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)

	res, err = uc.List(ctx, ListTicketsCommand{ActorID: e.outsider, ActorRole: authorization.RoleUser})
	require.NoError(t, err)
	assert.Empty(t, res.Tickets)

	_, err = uc.List(ctx, ListTicketsCommand{ActorID: e.dev, ProjectID: other.ProjectID()})
	assert.True(t, errors.IsForbiddenError(err))

	history, err := uc.History(ctx, e.dev, first.ID())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTicketAttachments(t *testing.T) {
	e := newEnv(t)
	tk := e.seedTicket(t, nil)
	uc := NewAttachmentsUseCase(e.tickets, e.history, e.projects, e.tx, e.recorder, e.log)
	ctx := context.Background()

	a, err := uc.Add(ctx, AddAttachmentCommand{ActorID: e.dev, TicketID: tk.ID(), Name: "trace.log", URL: "https://files.example.com/trace.log", Type: "text/plain", Size: 512})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Len(t, tk.Attachments(), 1)

	_, err = uc.Add(ctx, AddAttachmentCommand{ActorID: e.dev, TicketID: tk.ID(), Name: "", URL: "x"})
	assert.True(t, errors.IsValidationError(err))

	err = uc.Remove(ctx, RemoveAttachmentCommand{ActorID: e.dev2, TicketID: tk.ID(), AttachmentID: a.ID})
	assert.True(t, errors.IsForbiddenError(err))

	err = uc.Remove(ctx, RemoveAttachmentCommand{ActorID: e.dev, TicketID: tk.ID(), AttachmentID: "missing"})
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, uc.Remove(ctx, RemoveAttachmentCommand{ActorID: e.reporter, TicketID: tk.ID(), AttachmentID: a.ID}))
	assert.Empty(t, tk.Attachments())

	entries, _ := e.history.ListByTicket(ctx, tk.ID())
	require.Len(t, entries, 2)
	assert.Equal(t, ticket.ActionAttachmentAdded, entries[0].Action())
	assert.Equal(t, ticket.ActionAttachmentRemoved, entries[1].Action())
}

// createVia runs the create use case so the ticket carries its created history.
func createVia(t *testing.T, e *env, actorID, projectID uint, title string) *ticket.Ticket {
	t.Helper()
	out, err := e.create().Execute(context.Background(), bugCommand(actorID, projectID, title))
	require.NoError(t, err)
	tk, err := e.tickets.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	return tk
}

func bugCommand(actorID, projectID uint, title string) CreateTicketCommand {
	return CreateTicketCommand{
		ActorID: actorID, ProjectID: projectID, Title: title,
		Type: "Bug", Status: "To Do", Priority: "Low",
	}
}
