package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func uintPtr(v uint) *uint       { return &v }
func strPtr(v string) *string    { return &v }
func floatPtr(v float64) *float64 { return &v }

func newTestTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket(NewTicketParams{
		ProjectID:   1,
		ReporterID:  10,
		Title:       "Login fails",
		Description: "500 on submit",
		Type:        "Bug",
		Status:      "To Do",
		Priority:    "High",
		Labels:      []string{"auth", " auth ", ""},
	})
	require.NoError(t, err)
	require.NoError(t, tk.SetID(100))
	return tk
}

// ---------------------------------------------------------------------------
// Constructor
// ---------------------------------------------------------------------------

func TestNewTicket(t *testing.T) {
	tk := newTestTicket(t)

	assert.Equal(t, []string{"auth"}, tk.Labels())
	assert.Empty(t, tk.Watchers())
	assert.Nil(t, tk.AssigneeID())
	assert.True(t, tk.IsReporter(10))
}

func TestNewTicket_Invalid(t *testing.T) {
	base := NewTicketParams{ProjectID: 1, ReporterID: 1, Title: "t", Type: "Bug", Status: "To Do", Priority: "Low"}

	tests := []struct {
		name   string
		mutate func(p *NewTicketParams)
	}{
		{"no project", func(p *NewTicketParams) { p.ProjectID = 0 }},
		{"no reporter", func(p *NewTicketParams) { p.ReporterID = 0 }},
		{"blank title", func(p *NewTicketParams) { p.Title = "   " }},
		{"no status", func(p *NewTicketParams) { p.Status = "" }},
		{"negative estimate", func(p *NewTicketParams) { p.EstimatedTime = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			_, err := NewTicket(p)
			assert.Error(t, err)
		})
	}
}

// ---------------------------------------------------------------------------
// Patch
// ---------------------------------------------------------------------------

func TestApply_CollectsAllChangedFields(t *testing.T) {
	tk := newTestTicket(t)
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	labels := []string{"auth", "urgent"}

	changes, err := tk.Apply(Patch{
		Title:         strPtr("Login fails on Safari"),
		Status:        strPtr("In Progress"),
		Priority:      strPtr("High"),
		AssigneeID:    uintPtr(11),
		DueDate:       &due,
		EstimatedTime: floatPtr(3.5),
		Labels:        &labels,
	})
	require.NoError(t, err)

	assert.Len(t, changes, 6)
	assert.NotContains(t, changes, FieldPriority)
	assert.Equal(t, FieldChange{From: "To Do", To: "In Progress"}, changes[FieldStatus])
	assert.Equal(t, FieldChange{From: nil, To: uint(11)}, changes[FieldAssignee])
	assert.Equal(t, "Login fails on Safari", tk.Title())
	assert.Equal(t, uint(11), *tk.AssigneeID())
	assert.Equal(t, due, *tk.DueDate())
	assert.Equal(t, 3.5, tk.EstimatedTime())
	assert.Equal(t, labels, tk.Labels())
}

func TestApply_NoChangesLeavesTicket(t *testing.T) {
	tk := newTestTicket(t)
	before := tk.UpdatedAt()

	changes, err := tk.Apply(Patch{Title: strPtr("Login fails"), Status: strPtr("To Do")})
	require.NoError(t, err)
	assert.True(t, changes.IsEmpty())
	assert.Equal(t, before, tk.UpdatedAt())
}

func TestApply_ClearAssigneeAndDueDate(t *testing.T) {
	tk := newTestTicket(t)
	due := time.Now().UTC()
	_, err := tk.Apply(Patch{AssigneeID: uintPtr(3), DueDate: &due})
	require.NoError(t, err)

	changes, err := tk.Apply(Patch{ClearAssignee: true, ClearDueDate: true})
	require.NoError(t, err)
	assert.Equal(t, FieldChange{From: uint(3), To: nil}, changes[FieldAssignee])
	assert.Contains(t, changes, FieldDueDate)
	assert.Nil(t, tk.AssigneeID())
	assert.Nil(t, tk.DueDate())
}

func TestApply_InvalidLeavesTicket(t *testing.T) {
	tk := newTestTicket(t)

	_, err := tk.Apply(Patch{Title: strPtr(""), Status: strPtr("Done")})
	assert.Error(t, err)
	assert.Equal(t, "To Do", tk.Status())
}

// ---------------------------------------------------------------------------
// Assign, status, watchers
// ---------------------------------------------------------------------------

func TestAssign(t *testing.T) {
	tk := newTestTicket(t)

	change, changed := tk.Assign(uintPtr(20))
	assert.True(t, changed)
	assert.Equal(t, FieldChange{From: nil, To: uint(20)}, change)
	assert.True(t, tk.IsWatcher(20))

	change, changed = tk.Assign(uintPtr(21))
	assert.True(t, changed)
	assert.Equal(t, FieldChange{From: uint(20), To: uint(21)}, change)
	assert.Equal(t, []uint{20, 21}, tk.Watchers())

	_, changed = tk.Assign(uintPtr(21))
	assert.False(t, changed)

	change, changed = tk.Assign(nil)
	assert.True(t, changed)
	assert.Equal(t, FieldChange{From: uint(21), To: nil}, change)

	_, changed = tk.Assign(nil)
	assert.False(t, changed)
}

func TestTransitionStatus(t *testing.T) {
	tk := newTestTicket(t)

	change, changed := tk.TransitionStatus("Review")
	assert.True(t, changed)
	assert.Equal(t, FieldChange{From: "To Do", To: "Review"}, change)

	_, changed = tk.TransitionStatus("Review")
	assert.False(t, changed)
}

func TestWatchersIdempotent(t *testing.T) {
	tk := newTestTicket(t)

	assert.True(t, tk.AddWatcher(5))
	assert.False(t, tk.AddWatcher(5))
	assert.False(t, tk.AddWatcher(0))
	assert.True(t, tk.RemoveWatcher(5))
	assert.False(t, tk.RemoveWatcher(5))
	assert.Empty(t, tk.Watchers())
}

func TestAttachments(t *testing.T) {
	tk := newTestTicket(t)

	a, err := NewAttachment("trace.log", "https://files.example.com/trace.log", "text/plain", 2048, 10)
	require.NoError(t, err)
	require.NoError(t, tk.AddAttachment(a))
	assert.Error(t, tk.AddAttachment(a))

	got, ok := tk.Attachment(a.ID)
	require.True(t, ok)
	assert.Equal(t, "trace.log", got.Name)

	removed, ok := tk.RemoveAttachment(a.ID)
	assert.True(t, ok)
	assert.Equal(t, a.ID, removed.ID)
	_, ok = tk.RemoveAttachment(a.ID)
	assert.False(t, ok)

	_, err = NewAttachment("", "u", "", 1, 1)
	assert.Error(t, err)
}

func TestNewHistoryEntry(t *testing.T) {
	h, err := NewHistoryEntry(1, 2, ActionUpdated, Changes{FieldTitle: {From: "a", To: "b"}})
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, h.Action())

	c := h.Changes()
	delete(c, FieldTitle)
	assert.Len(t, h.Changes(), 1)

	_, err = NewHistoryEntry(1, 2, "commented", nil)
	assert.Error(t, err)
}
