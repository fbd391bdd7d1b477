package team

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/team/dto"
	"github.com/trackr-io/trackr/internal/application/team/usecases"
	"github.com/trackr-io/trackr/internal/interfaces/http/handlers/testutil"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type mockCreate struct {
	fn func(ctx context.Context, cmd usecases.CreateTeamCommand) (*dto.TeamDTO, error)
}

func (m *mockCreate) Execute(ctx context.Context, cmd usecases.CreateTeamCommand) (*dto.TeamDTO, error) {
	return m.fn(ctx, cmd)
}

type mockMembers struct {
	addFn        func(ctx context.Context, cmd usecases.MemberCommand) (*dto.TeamDTO, error)
	removeFn     func(ctx context.Context, cmd usecases.MemberCommand) error
	updateRoleFn func(ctx context.Context, cmd usecases.MemberCommand) (*dto.TeamDTO, error)
}

func (m *mockMembers) Add(ctx context.Context, cmd usecases.MemberCommand) (*dto.TeamDTO, error) {
	return m.addFn(ctx, cmd)
}

func (m *mockMembers) Remove(ctx context.Context, cmd usecases.MemberCommand) error {
	return m.removeFn(ctx, cmd)
}

func (m *mockMembers) UpdateRole(ctx context.Context, cmd usecases.MemberCommand) (*dto.TeamDTO, error) {
	return m.updateRoleFn(ctx, cmd)
}

type mockQueries struct {
	getFn  func(ctx context.Context, actorID, teamID uint) (*dto.TeamDTO, error)
	listFn func(ctx context.Context, actorID uint, page query.PageFilter) (*usecases.ListTeamsResult, error)
}

func (m *mockQueries) Get(ctx context.Context, actorID, teamID uint) (*dto.TeamDTO, error) {
	return m.getFn(ctx, actorID, teamID)
}

func (m *mockQueries) List(ctx context.Context, actorID uint, page query.PageFilter) (*usecases.ListTeamsResult, error) {
	return m.listFn(ctx, actorID, page)
}

func newTestHandler() (*Handler, *mockCreate, *mockMembers, *mockQueries) {
	cr, mem, q := &mockCreate{}, &mockMembers{}, &mockQueries{}
	return NewHandler(cr, mem, q, logger.NewNop()), cr, mem, q
}

func TestCreate(t *testing.T) {
	h, cr, _, _ := newTestHandler()
	cr.fn = func(_ context.Context, cmd usecases.CreateTeamCommand) (*dto.TeamDTO, error) {
		return &dto.TeamDTO{ID: 1, Name: cmd.Name, OwnerID: cmd.ActorID}, nil
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/teams", CreateTeamRequest{Name: "Platform"})
	testutil.SetAuthContext(c, 9)
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	var out dto.TeamDTO
	require.NoError(t, testutil.DecodeData(w, &out))
	assert.Equal(t, uint(9), out.OwnerID)
}

func TestCreate_MissingName(t *testing.T) {
	h, _, _, _ := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/teams", map[string]string{})
	testutil.SetAuthContext(c, 9)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList_Paginates(t *testing.T) {
	h, _, _, q := newTestHandler()
	q.listFn = func(_ context.Context, _ uint, page query.PageFilter) (*usecases.ListTeamsResult, error) {
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 5, page.PageSize)
		return &usecases.ListTeamsResult{Teams: []*dto.TeamDTO{{ID: 1}}, Total: 6, Page: 2, PageSize: 5}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/teams", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetQueryParams(c, map[string]string{"page": "2", "page_size": "5"})
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var out testutil.ListData
	require.NoError(t, testutil.DecodeData(w, &out))
	assert.Equal(t, int64(6), out.Total)
	assert.Equal(t, 2, out.TotalPages)
}

func TestGet_NotFound(t *testing.T) {
	h, _, _, q := newTestHandler()
	q.getFn = func(context.Context, uint, uint) (*dto.TeamDTO, error) {
		return nil, errors.NewNotFoundError("team not found")
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/teams/4", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "4")
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddMember(t *testing.T) {
	h, _, mem, _ := newTestHandler()
	var got usecases.MemberCommand
	mem.addFn = func(_ context.Context, cmd usecases.MemberCommand) (*dto.TeamDTO, error) {
		got = cmd
		return &dto.TeamDTO{ID: cmd.TeamID}, nil
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/teams/3/members", AddMemberRequest{UserID: 8, Role: "manager"})
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "3")
	h.AddMember(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecases.MemberCommand{ActorID: 1, TeamID: 3, UserID: 8, Role: "manager"}, got)
}

func TestRemoveMember(t *testing.T) {
	h, _, mem, _ := newTestHandler()
	mem.removeFn = func(_ context.Context, cmd usecases.MemberCommand) error {
		if cmd.ActorID != 1 {
			return errors.NewForbiddenError("team admin required")
		}
		return nil
	}

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/teams/3/members/8", nil)
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "3")
	testutil.SetURLParam(c, "userId", "8")
	h.RemoveMember(c)
	assert.Equal(t, http.StatusNoContent, w.Code)

	c, w = testutil.NewTestContext(http.MethodDelete, "/api/teams/3/members/8", nil)
	testutil.SetAuthContext(c, 2)
	testutil.SetURLParam(c, "id", "3")
	testutil.SetURLParam(c, "userId", "8")
	h.RemoveMember(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateMemberRole_RejectsUnknownRole(t *testing.T) {
	h, _, _, _ := newTestHandler()

	c, w := testutil.NewTestContext(http.MethodPut, "/api/teams/3/members/8", UpdateMemberRoleRequest{Role: "owner"})
	testutil.SetAuthContext(c, 1)
	testutil.SetURLParam(c, "id", "3")
	testutil.SetURLParam(c, "userId", "8")
	h.UpdateMemberRole(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
