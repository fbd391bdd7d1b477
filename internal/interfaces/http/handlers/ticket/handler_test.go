package ticket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/ticket/dto"
	"github.com/trackr-io/trackr/internal/application/ticket/usecases"
	"github.com/trackr-io/trackr/internal/interfaces/http/handlers/testutil"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

// =====================================================================
// Mocks
// =====================================================================

type mockCreateTicket struct {
	fn func(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error)
}

func (m *mockCreateTicket) Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
	return m.fn(ctx, cmd)
}

type mockUpdateTicket struct {
	fn func(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error)
}

func (m *mockUpdateTicket) Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error) {
	return m.fn(ctx, cmd)
}

type mockAssignTicket struct {
	fn func(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error)
}

func (m *mockAssignTicket) Execute(ctx context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error) {
	return m.fn(ctx, cmd)
}

type mockTransition struct {
	fn func(ctx context.Context, cmd usecases.TransitionStatusCommand) (*dto.TicketDTO, error)
}

func (m *mockTransition) Execute(ctx context.Context, cmd usecases.TransitionStatusCommand) (*dto.TicketDTO, error) {
	return m.fn(ctx, cmd)
}

type mockDeleteTicket struct {
	fn func(ctx context.Context, cmd usecases.DeleteTicketCommand) error
}

func (m *mockDeleteTicket) Execute(ctx context.Context, cmd usecases.DeleteTicketCommand) error {
	return m.fn(ctx, cmd)
}

type mockQueries struct {
	getFn     func(ctx context.Context, actorID, ticketID uint) (*dto.TicketDTO, error)
	historyFn func(ctx context.Context, actorID, ticketID uint) ([]*dto.HistoryEntryDTO, error)
	listFn    func(ctx context.Context, cmd usecases.ListTicketsCommand) (*usecases.ListTicketsResult, error)
}

func (m *mockQueries) Get(ctx context.Context, actorID, ticketID uint) (*dto.TicketDTO, error) {
	return m.getFn(ctx, actorID, ticketID)
}

func (m *mockQueries) History(ctx context.Context, actorID, ticketID uint) ([]*dto.HistoryEntryDTO, error) {
	return m.historyFn(ctx, actorID, ticketID)
}

func (m *mockQueries) List(ctx context.Context, cmd usecases.ListTicketsCommand) (*usecases.ListTicketsResult, error) {
	return m.listFn(ctx, cmd)
}

type mockWatchers struct {
	addFn    func(ctx context.Context, cmd usecases.WatcherCommand) (*dto.TicketDTO, error)
	removeFn func(ctx context.Context, cmd usecases.WatcherCommand) (*dto.TicketDTO, error)
}

func (m *mockWatchers) Add(ctx context.Context, cmd usecases.WatcherCommand) (*dto.TicketDTO, error) {
	return m.addFn(ctx, cmd)
}

func (m *mockWatchers) Remove(ctx context.Context, cmd usecases.WatcherCommand) (*dto.TicketDTO, error) {
	return m.removeFn(ctx, cmd)
}

type mockAttachments struct {
	addFn    func(ctx context.Context, cmd usecases.AddAttachmentCommand) (*dto.AttachmentDTO, error)
	removeFn func(ctx context.Context, cmd usecases.RemoveAttachmentCommand) error
}

func (m *mockAttachments) Add(ctx context.Context, cmd usecases.AddAttachmentCommand) (*dto.AttachmentDTO, error) {
	return m.addFn(ctx, cmd)
}

func (m *mockAttachments) Remove(ctx context.Context, cmd usecases.RemoveAttachmentCommand) error {
	return m.removeFn(ctx, cmd)
}

type mocks struct {
	create      *mockCreateTicket
	update      *mockUpdateTicket
	assign      *mockAssignTicket
	transition  *mockTransition
	del         *mockDeleteTicket
	queries     *mockQueries
	watchers    *mockWatchers
	attachments *mockAttachments
}

func newTestHandler() (*TicketHandler, *mocks) {
	m := &mocks{
		create:      &mockCreateTicket{},
		update:      &mockUpdateTicket{},
		assign:      &mockAssignTicket{},
		transition:  &mockTransition{},
		del:         &mockDeleteTicket{},
		queries:     &mockQueries{},
		watchers:    &mockWatchers{},
		attachments: &mockAttachments{},
	}
	h := NewTicketHandler(m.create, m.update, m.assign, m.transition, m.del, m.queries, m.watchers, m.attachments, logger.NewNop())
	return h, m
}

func authed(method, path string, body any, userID uint, params ...string) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := testutil.NewTestContext(method, path, body)
	testutil.SetAuthContext(c, userID, authorization.RoleDeveloper)
	for i := 0; i+1 < len(params); i += 2 {
		testutil.SetURLParam(c, params[i], params[i+1])
	}
	return c, w
}

// =====================================================================
// Tests
// =====================================================================

func TestCreateTicket(t *testing.T) {
	h, m := newTestHandler()
	var got usecases.CreateTicketCommand
	m.create.fn = func(_ context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
		got = cmd
		return &dto.TicketDTO{ID: 1, TicketNumber: "CP-1", Title: cmd.Title}, nil
	}

	c, w := authed(http.MethodPost, "/api/tickets", CreateTicketRequest{
		ProjectID: 3, Title: "Login broken", Type: "Bug", Status: "To Do", Priority: "High", Labels: []string{"auth"},
	}, 5)
	h.CreateTicket(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(5), got.ActorID)
	assert.Equal(t, uint(3), got.ProjectID)
	assert.Equal(t, []string{"auth"}, got.Labels)
	assert.Equal(t, "To Do", got.Status)

	var out dto.TicketDTO
	require.NoError(t, testutil.DecodeData(w, &out))
	assert.Equal(t, "CP-1", out.TicketNumber)
}

func TestCreateTicket_InvalidStatusIsRejected(t *testing.T) {
	h, m := newTestHandler()
	m.create.fn = func(context.Context, usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
		return nil, errors.NewValidationError("invalid status", "Blocked is not a status of this project")
	}

	c, w := authed(http.MethodPost, "/api/tickets", CreateTicketRequest{ProjectID: 3, Title: "x", Type: "Bug", Status: "Blocked", Priority: "High"}, 5)
	h.CreateTicket(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestCreateTicket_MissingProject(t *testing.T) {
	h, _ := newTestHandler()

	c, w := authed(http.MethodPost, "/api/tickets", map[string]any{"title": "x"}, 5)
	h.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTicket_MissingStatusIsABindingError(t *testing.T) {
	h, m := newTestHandler()
	called := false
	m.create.fn = func(context.Context, usecases.CreateTicketCommand) (*dto.TicketDTO, error) {
		called = true
		return nil, nil
	}

	c, w := authed(http.MethodPost, "/api/tickets", map[string]any{
		"project_id": 3, "title": "x", "type": "Bug", "priority": "High",
	}, 5)
	h.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestUpdateTicket_NullClearsFields(t *testing.T) {
	h, m := newTestHandler()
	var got usecases.UpdateTicketCommand
	m.update.fn = func(_ context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error) {
		got = cmd
		return &dto.TicketDTO{ID: cmd.TicketID}, nil
	}

	c, w := authed(http.MethodPut, "/api/tickets/9", `{"title":"New","assignee_id":null,"due_date":null}`, 5, "id", "9")
	h.UpdateTicket(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(9), got.TicketID)
	require.NotNil(t, got.Patch.Title)
	assert.Equal(t, "New", *got.Patch.Title)
	assert.True(t, got.Patch.ClearAssignee)
	assert.Nil(t, got.Patch.AssigneeID)
	assert.True(t, got.Patch.ClearDueDate)
	assert.Nil(t, got.Patch.Status)
}

func TestUpdateTicket_AbsentFieldsUntouched(t *testing.T) {
	h, m := newTestHandler()
	var got usecases.UpdateTicketCommand
	m.update.fn = func(_ context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketDTO, error) {
		got = cmd
		return &dto.TicketDTO{}, nil
	}

	c, w := authed(http.MethodPut, "/api/tickets/9", `{"assignee_id":4,"due_date":"2026-11-01T00:00:00Z"}`, 5, "id", "9")
	h.UpdateTicket(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Patch.AssigneeID)
	assert.Equal(t, uint(4), *got.Patch.AssigneeID)
	assert.False(t, got.Patch.ClearAssignee)
	require.NotNil(t, got.Patch.DueDate)
	assert.Equal(t, 2026, got.Patch.DueDate.Year())
	assert.Nil(t, got.Patch.Title)
	assert.Nil(t, got.Patch.Labels)
}

func TestUpdateTicket_BadAssignee(t *testing.T) {
	h, _ := newTestHandler()

	c, w := authed(http.MethodPut, "/api/tickets/9", `{"assignee_id":"bob"}`, 5, "id", "9")
	h.UpdateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTicket_ForbiddenForNonMember(t *testing.T) {
	h, m := newTestHandler()
	m.update.fn = func(context.Context, usecases.UpdateTicketCommand) (*dto.TicketDTO, error) {
		return nil, errors.NewForbiddenError("not a project member")
	}

	c, w := authed(http.MethodPut, "/api/tickets/9", `{"title":"x"}`, 99, "id", "9")
	h.UpdateTicket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAssignTicket(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantID     *uint
	}{
		{name: "assign", body: `{"assignee_id":7}`, wantStatus: http.StatusOK, wantID: ptr(7)},
		{name: "unassign", body: `{"assignee_id":null}`, wantStatus: http.StatusOK},
		{name: "zero", body: `{"assignee_id":0}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler()
			var got usecases.AssignTicketCommand
			m.assign.fn = func(_ context.Context, cmd usecases.AssignTicketCommand) (*dto.TicketDTO, error) {
				got = cmd
				return &dto.TicketDTO{ID: cmd.TicketID, AssigneeID: cmd.AssigneeID}, nil
			}

			c, w := authed(http.MethodPut, "/api/tickets/2/assign", tt.body, 5, "id", "2")
			h.AssignTicket(c)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantID, got.AssigneeID)
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	h, m := newTestHandler()
	m.transition.fn = func(_ context.Context, cmd usecases.TransitionStatusCommand) (*dto.TicketDTO, error) {
		return &dto.TicketDTO{ID: cmd.TicketID, Status: cmd.Status}, nil
	}

	c, w := authed(http.MethodPut, "/api/tickets/2/status", TransitionStatusRequest{Status: "In Progress"}, 5, "id", "2")
	h.UpdateStatus(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = authed(http.MethodPut, "/api/tickets/2/status", map[string]string{}, 5, "id", "2")
	h.UpdateStatus(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTickets_ParsesFilters(t *testing.T) {
	tests := []struct {
		name   string
		query  map[string]string
		status int
		check  func(t *testing.T, cmd usecases.ListTicketsCommand)
	}{
		{
			name:   "assignee me",
			query:  map[string]string{"assignee": "me", "project": "3", "status": "Open"},
			status: http.StatusOK,
			check: func(t *testing.T, cmd usecases.ListTicketsCommand) {
				require.NotNil(t, cmd.AssigneeID)
				assert.Equal(t, uint(5), *cmd.AssigneeID)
				assert.Equal(t, uint(3), cmd.ProjectID)
				assert.Equal(t, "Open", cmd.Status)
			},
		},
		{
			name:   "unassigned",
			query:  map[string]string{"assignee": "unassigned", "reporter": "8"},
			status: http.StatusOK,
			check: func(t *testing.T, cmd usecases.ListTicketsCommand) {
				assert.True(t, cmd.Unassigned)
				assert.Nil(t, cmd.AssigneeID)
				require.NotNil(t, cmd.ReporterID)
				assert.Equal(t, uint(8), *cmd.ReporterID)
			},
		},
		{name: "bad project", query: map[string]string{"project": "abc"}, status: http.StatusBadRequest},
		{name: "bad reporter", query: map[string]string{"reporter": "someone"}, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler()
			var got usecases.ListTicketsCommand
			m.queries.listFn = func(_ context.Context, cmd usecases.ListTicketsCommand) (*usecases.ListTicketsResult, error) {
				got = cmd
				return &usecases.ListTicketsResult{Tickets: []*dto.TicketDTO{}, Page: 1, PageSize: 20}, nil
			}

			c, w := authed(http.MethodGet, "/api/tickets", nil, 5)
			testutil.SetQueryParams(c, tt.query)
			h.ListTickets(c)

			require.Equal(t, tt.status, w.Code)
			if tt.check != nil {
				assert.Equal(t, authorization.RoleDeveloper, got.ActorRole)
				tt.check(t, got)
			}
		})
	}
}

func TestGetHistory(t *testing.T) {
	h, m := newTestHandler()
	m.queries.historyFn = func(context.Context, uint, uint) ([]*dto.HistoryEntryDTO, error) {
		return []*dto.HistoryEntryDTO{{ID: 1, Action: "created"}, {ID: 2, Action: "assigned"}}, nil
	}

	c, w := authed(http.MethodGet, "/api/tickets/2/history", nil, 5, "id", "2")
	h.GetHistory(c)

	require.Equal(t, http.StatusOK, w.Code)
	var out []dto.HistoryEntryDTO
	require.NoError(t, testutil.DecodeData(w, &out))
	assert.Len(t, out, 2)
}

func TestAddWatcher_DefaultsToSelf(t *testing.T) {
	h, m := newTestHandler()
	var got usecases.WatcherCommand
	m.watchers.addFn = func(_ context.Context, cmd usecases.WatcherCommand) (*dto.TicketDTO, error) {
		got = cmd
		return &dto.TicketDTO{}, nil
	}

	c, w := authed(http.MethodPost, "/api/tickets/2/watchers", nil, 5, "id", "2")
	h.AddWatcher(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(0), got.UserID)
	assert.Equal(t, uint(5), got.ActorID)

	c, w = authed(http.MethodPost, "/api/tickets/2/watchers", AddWatcherRequest{UserID: 6}, 5, "id", "2")
	h.AddWatcher(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(6), got.UserID)
}

func TestRemoveWatcher(t *testing.T) {
	h, m := newTestHandler()
	var got usecases.WatcherCommand
	m.watchers.removeFn = func(_ context.Context, cmd usecases.WatcherCommand) (*dto.TicketDTO, error) {
		got = cmd
		return &dto.TicketDTO{}, nil
	}

	c, w := authed(http.MethodDelete, "/api/tickets/2/watchers/6", nil, 5, "id", "2", "userId", "6")
	h.RemoveWatcher(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecases.WatcherCommand{ActorID: 5, TicketID: 2, UserID: 6}, got)
}

func TestAttachments(t *testing.T) {
	h, m := newTestHandler()
	m.attachments.addFn = func(_ context.Context, cmd usecases.AddAttachmentCommand) (*dto.AttachmentDTO, error) {
		return &dto.AttachmentDTO{ID: "a1", Name: cmd.Name, URL: cmd.URL, UploadedBy: cmd.ActorID}, nil
	}
	m.attachments.removeFn = func(_ context.Context, cmd usecases.RemoveAttachmentCommand) error {
		if cmd.AttachmentID != "a1" {
			return errors.NewNotFoundError("attachment not found")
		}
		return nil
	}

	c, w := authed(http.MethodPost, "/api/tickets/2/attachments", AddAttachmentRequest{
		Name: "trace.log", URL: "https://files.example.com/trace.log", Size: 2048,
	}, 5, "id", "2")
	h.AddAttachment(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = authed(http.MethodPost, "/api/tickets/2/attachments", AddAttachmentRequest{Name: "x", URL: "not a url"}, 5, "id", "2")
	h.AddAttachment(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = authed(http.MethodDelete, "/api/tickets/2/attachments/a1", nil, 5, "id", "2", "attachmentId", "a1")
	h.RemoveAttachment(c)
	assert.Equal(t, http.StatusNoContent, w.Code)

	c, w = authed(http.MethodDelete, "/api/tickets/2/attachments/zz", nil, 5, "id", "2", "attachmentId", "zz")
	h.RemoveAttachment(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTicket_RequiresAuth(t *testing.T) {
	h, _ := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/tickets/2", nil)
	testutil.SetURLParam(c, "id", "2")
	h.DeleteTicket(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func ptr(v uint) *uint { return &v }
