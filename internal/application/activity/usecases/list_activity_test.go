package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/testutil"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/domain/shared/membership"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type fixture struct {
	activities *testutil.ActivityRepository
	projects   *testutil.ProjectRepository
	teams      *testutil.TeamRepository
	tickets    *testutil.TicketRepository
}

func newFixture() *fixture {
	return &fixture{
		activities: testutil.NewActivityRepository(),
		projects:   testutil.NewProjectRepository(),
		teams:      testutil.NewTeamRepository(),
		tickets:    testutil.NewTicketRepository(),
	}
}

func (f *fixture) record(t *testing.T, e activity.Entry) {
	t.Helper()
	a, err := activity.NewActivity(e)
	require.NoError(t, err)
	require.NoError(t, f.activities.Create(context.Background(), a))
}

func TestListUserActivity_SharedMembershipRule(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	uc := NewListUserActivityUseCase(f.activities, f.projects, f.teams, logger.NewNop())

	f.record(t, activity.Entry{ActorID: 2, Action: activity.ActionLoggedIn, EntityType: activity.EntityUser, EntityID: 2})

	_, err := uc.Execute(ctx, ListUserActivityCommand{ActorID: 1, UserID: 2})
	assert.True(t, errors.IsForbiddenError(err))

	own, err := uc.Execute(ctx, ListUserActivityCommand{ActorID: 2, UserID: 2})
	require.NoError(t, err)
	assert.Len(t, own.Activities, 1)

	p := testutil.SeedProject(t, f.projects, "Customer Portal", "CP", 1)
	_, err = p.AddMember(2, membership.RoleDeveloper)
	require.NoError(t, err)

	res, err := uc.Execute(ctx, ListUserActivityCommand{ActorID: 1, UserID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
}

func TestListUserActivity_SharedTeamIsEnough(t *testing.T) {
	f := newFixture()
	testutil.SeedTeam(t, f.teams, "Platform", 1, 2)
	uc := NewListUserActivityUseCase(f.activities, f.projects, f.teams, logger.NewNop())

	_, err := uc.Execute(context.Background(), ListUserActivityCommand{ActorID: 1, UserID: 2})
	assert.NoError(t, err)
}

func TestListProjectActivity(t *testing.T) {
	f := newFixture()
	p := testutil.SeedProject(t, f.projects, "Customer Portal", "CP", 1, 2)
	pid := p.ID()
	other := uint(99)
	for i := 0; i < 3; i++ {
		f.record(t, activity.Entry{ActorID: 1, Action: activity.ActionUpdated, EntityType: activity.EntityProject, EntityID: pid, ProjectID: &pid})
	}
	f.record(t, activity.Entry{ActorID: 1, Action: activity.ActionUpdated, EntityType: activity.EntityProject, EntityID: 99, ProjectID: &other})

	uc := NewListProjectActivityUseCase(f.activities, f.projects, logger.NewNop())

	res, err := uc.Execute(context.Background(), ListProjectActivityCommand{
		ActorID:   2,
		ProjectID: pid,
		Page:      query.PageFilter{Page: 1, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	require.Len(t, res.Activities, 2)
	assert.Greater(t, res.Activities[0].ID, res.Activities[1].ID)

	_, err = uc.Execute(context.Background(), ListProjectActivityCommand{ActorID: 5, ProjectID: pid})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = uc.Execute(context.Background(), ListProjectActivityCommand{ActorID: 1, ProjectID: 404})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListTeamActivity(t *testing.T) {
	f := newFixture()
	tm := testutil.SeedTeam(t, f.teams, "Platform", 1)
	uc := NewListTeamActivityUseCase(f.activities, f.teams, logger.NewNop())

	_, err := uc.Execute(context.Background(), ListTeamActivityCommand{ActorID: 1, TeamID: tm.ID()})
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), ListTeamActivityCommand{ActorID: 2, TeamID: tm.ID()})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestListEntityActivity(t *testing.T) {
	f := newFixture()
	p := testutil.SeedProject(t, f.projects, "Customer Portal", "CP", 1)
	tk := testutil.SeedTicket(t, f.tickets, p, 1, nil)
	f.record(t, activity.Entry{ActorID: 1, Action: activity.ActionCreated, EntityType: activity.EntityTicket, EntityID: tk.ID()})

	uc := NewListEntityActivityUseCase(f.activities, f.projects, f.teams, f.tickets, logger.NewNop())
	ctx := context.Background()

	res, err := uc.Execute(ctx, ListEntityActivityCommand{ActorID: 1, EntityType: "ticket", EntityID: tk.ID()})
	require.NoError(t, err)
	assert.Len(t, res.Activities, 1)

	_, err = uc.Execute(ctx, ListEntityActivityCommand{ActorID: 3, EntityType: "ticket", EntityID: tk.ID()})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = uc.Execute(ctx, ListEntityActivityCommand{ActorID: 1, EntityType: "ticket", EntityID: 404})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(ctx, ListEntityActivityCommand{ActorID: 1, EntityType: "comment", EntityID: 1})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(ctx, ListEntityActivityCommand{ActorID: 1, EntityType: "user", EntityID: 3})
	assert.True(t, errors.IsForbiddenError(err))
}
