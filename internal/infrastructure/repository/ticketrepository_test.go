package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/testutil"
	"github.com/trackr-io/trackr/internal/domain/comment"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/shared/db"
	apperrors "github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type ticketFixture struct {
	projects *ProjectRepositoryImpl
	tickets  *TicketRepositoryImpl
	history  *TicketHistoryRepositoryImpl
	comments *CommentRepositoryImpl
	project  *project.Project
}

func newTicketFixture(t *testing.T) *ticketFixture {
	gdb := newTestDB(t)
	f := &ticketFixture{
		projects: NewProjectRepository(gdb),
		tickets:  NewTicketRepository(gdb),
		history:  NewTicketHistoryRepository(gdb),
		comments: NewCommentRepository(gdb),
	}
	f.project = testutil.SeedProject(t, f.projects, "Customer Portal", "CP", 1, 2)
	return f
}

func TestTicketRepository_RoundTrip(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	tk, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:     f.project.ID(),
		ReporterID:    1,
		Title:         "Checkout button unresponsive",
		Description:   "Nothing happens on click",
		Type:          "Bug",
		Status:        "To Do",
		Priority:      "High",
		AssigneeID:    ptr(uint(2)),
		EstimatedTime: 3.5,
		Labels:        []string{"frontend", "checkout"},
	})
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber("CP-1"))
	tk.AddWatcher(2)
	att, err := ticket.NewAttachment("trace.log", "https://files.example.com/trace.log", "text/plain", 512, 1)
	require.NoError(t, err)
	require.NoError(t, tk.AddAttachment(att))
	require.NoError(t, f.tickets.Create(ctx, tk))

	got, err := f.tickets.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "CP-1", got.Number())
	assert.Equal(t, []string{"frontend", "checkout"}, got.Labels())
	assert.Equal(t, []uint{2}, got.Watchers())
	require.Len(t, got.Attachments(), 1)
	assert.Equal(t, att.ID, got.Attachments()[0].ID)
	assert.Equal(t, uint(2), *got.AssigneeID())
	assert.InDelta(t, 3.5, got.EstimatedTime(), 0.001)
}

func TestTicketRepository_UpdateClearsAssignee(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	tk := testutil.SeedTicket(t, f.tickets, f.project, 1, ptr(uint(2)))

	tk.Assign(nil)
	require.NoError(t, f.tickets.Update(ctx, tk))

	got, err := f.tickets.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID())
}

func TestTicketRepository_DuplicateNumberIsConflict(t *testing.T) {
	f := newTicketFixture(t)
	first := testutil.SeedTicket(t, f.tickets, f.project, 1, nil)

	again, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID: f.project.ID(), ReporterID: 1, Title: "Copy", Type: "Bug", Status: "To Do", Priority: "Low",
	})
	require.NoError(t, err)
	require.NoError(t, again.SetNumber(first.Number()))

	err = f.tickets.Create(context.Background(), again)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestTicketRepository_ListFilters(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	other := testutil.SeedProject(t, f.projects, "Internal Tools", "IT", 3)

	assigned := testutil.SeedTicket(t, f.tickets, f.project, 1, ptr(uint(2)))
	unassigned := testutil.SeedTicket(t, f.tickets, f.project, 2, nil)
	elsewhere := testutil.SeedTicket(t, f.tickets, other, 3, nil)

	tests := []struct {
		name   string
		filter ticket.ListFilter
		want   []uint
	}{
		{"by project", ticket.ListFilter{ProjectID: f.project.ID()}, []uint{unassigned.ID(), assigned.ID()}},
		{"visible set", ticket.ListFilter{ProjectIDs: []uint{f.project.ID(), other.ID()}}, []uint{elsewhere.ID(), unassigned.ID(), assigned.ID()}},
		{"empty visible set", ticket.ListFilter{}, []uint{}},
		{"unassigned", ticket.ListFilter{ProjectID: f.project.ID(), Unassigned: true}, []uint{unassigned.ID()}},
		{"assignee", ticket.ListFilter{ProjectID: f.project.ID(), AssigneeID: ptr(uint(2))}, []uint{assigned.ID()}},
		{"reporter", ticket.ListFilter{ProjectID: f.project.ID(), ReporterID: ptr(uint(2))}, []uint{unassigned.ID()}},
		{"search by number", ticket.ListFilter{ProjectIDs: []uint{f.project.ID(), other.ID()}, Search: elsewhere.Number()}, []uint{elsewhere.ID()}},
		{"status", ticket.ListFilter{ProjectID: f.project.ID(), Status: "Done"}, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := f.tickets.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]uint, 0, len(list))
			for _, tk := range list {
				ids = append(ids, tk.ID())
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}

	page, total, err := f.tickets.List(ctx, ticket.ListFilter{ProjectID: f.project.ID(), Page: query.PageFilter{Page: 2, PageSize: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, assigned.ID(), page[0].ID())
}

func TestTicketRepository_DeleteByProject(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	a := testutil.SeedTicket(t, f.tickets, f.project, 1, nil)
	b := testutil.SeedTicket(t, f.tickets, f.project, 1, nil)

	ids, err := f.tickets.IDsByProject(ctx, f.project.ID())
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID(), b.ID()}, ids)

	require.NoError(t, f.tickets.DeleteByProject(ctx, f.project.ID()))
	ids, err = f.tickets.IDsByProject(ctx, f.project.ID())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTicketHistoryRepository_AppendOnly(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	tk := testutil.SeedTicket(t, f.tickets, f.project, 1, nil)

	created, err := ticket.NewHistoryEntry(tk.ID(), 1, ticket.ActionCreated, ticket.Changes{
		ticket.FieldTitle: {From: nil, To: tk.Title()},
	})
	require.NoError(t, err)
	require.NoError(t, f.history.Append(ctx, created))

	moved, err := ticket.NewHistoryEntry(tk.ID(), 2, ticket.ActionStatusChanged, ticket.Changes{
		ticket.FieldStatus: {From: "To Do", To: "In Progress"},
	})
	require.NoError(t, err)
	require.NoError(t, f.history.Append(ctx, moved))

	entries, err := f.history.ListByTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ticket.ActionCreated, entries[0].Action())
	assert.Equal(t, ticket.ActionStatusChanged, entries[1].Action())
	assert.Equal(t, "In Progress", entries[1].Changes()[ticket.FieldStatus].To)

	require.NoError(t, f.history.DeleteByTicket(ctx, tk.ID()))
	entries, err = f.history.ListByTicket(ctx, tk.ID())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCommentRepository_RoundTrip(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	tk := testutil.SeedTicket(t, f.tickets, f.project, 1, nil)

	c, err := comment.NewComment(tk.ID(), 2, "Reproduced on staging, cc @alice", nil)
	require.NoError(t, err)
	require.NoError(t, f.comments.Create(ctx, c))
	require.NoError(t, c.Edit("Reproduced on staging and prod, cc @alice", nil))
	require.NoError(t, f.comments.Update(ctx, c))

	second, err := comment.NewComment(tk.ID(), 1, "Thanks", nil)
	require.NoError(t, err)
	require.NoError(t, f.comments.Create(ctx, second))

	list, err := f.comments.ListByTicket(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, c.ID(), list[0].ID())
	assert.True(t, list[0].IsEdited())
	assert.Equal(t, []string{"alice"}, list[0].Mentions())
	require.Len(t, list[0].EditHistory(), 1)
	assert.Equal(t, "Reproduced on staging, cc @alice", list[0].EditHistory()[0].Content)

	require.NoError(t, f.comments.DeleteByTicket(ctx, tk.ID()))
	list, err = f.comments.ListByTicket(ctx, tk.ID())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRepositories_JoinTransaction(t *testing.T) {
	f := newTicketFixture(t)
	tm := db.NewTransactionManager(f.tickets.db)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		tk, err := ticket.NewTicket(ticket.NewTicketParams{
			ProjectID: f.project.ID(), ReporterID: 1, Title: "Rolled back", Type: "Bug", Status: "To Do", Priority: "Low",
		})
		require.NoError(t, err)
		require.NoError(t, tk.SetNumber("CP-900"))
		require.NoError(t, f.tickets.Create(ctx, tk))
		return errors.New("abort")
	})
	require.Error(t, err)

	ids, err := f.tickets.IDsByProject(context.Background(), f.project.ID())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
