package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/activity"
	"github.com/trackr-io/trackr/internal/application/notification"
	"github.com/trackr-io/trackr/internal/application/testutil"
	"github.com/trackr-io/trackr/internal/domain/shared/membership"
	"github.com/trackr-io/trackr/internal/infrastructure/auth"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

var pageAll = query.PageFilter{Page: 1, PageSize: 100}

const sampleSeed = `
users:
  - name: Alice Admin
    email: alice@example.com
    password: s3cretpass
  - name: Dave Dev
    email: dave@example.com
    password: s3cretpass
    role: developer
  - name: Sam Submitter
    email: sam@example.com
    password: s3cretpass
teams:
  - name: Platform
    owner: alice@example.com
    members:
      - email: dave@example.com
        role: manager
      - email: sam@example.com
        role: submitter
projects:
  - name: Website
    key: WEB
    owner: alice@example.com
    team: Platform
    members:
      - email: sam@example.com
        role: submitter
`

type mockEnforcer struct {
	EnforceFunc func(role, resource, action string) (bool, error)
}

func (m *mockEnforcer) Enforce(role, resource, action string) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(role, resource, action)
	}
	return role == string(authorization.RoleAdmin) || role == string(authorization.RoleDeveloper), nil
}

type fixture struct {
	users    *testutil.UserRepository
	teams    *testutil.TeamRepository
	projects *testutil.ProjectRepository
	seeder   *Seeder
}

func newFixture() *fixture {
	log := logger.NewNop()
	f := &fixture{
		users:    testutil.NewUserRepository(),
		teams:    testutil.NewTeamRepository(),
		projects: testutil.NewProjectRepository(),
	}
	f.seeder = NewSeeder(Deps{
		Users:    f.users,
		Teams:    f.teams,
		Projects: f.projects,
		Hasher:   auth.NewBcryptPasswordHasher(4),
		Enforcer: &mockEnforcer{},
		Recorder: activity.NewRecorder(testutil.NewActivityRepository(), log),
		Notifier: notification.NewDispatcher(testutil.NewNotificationRepository(), log),
	}, log)
	return f
}

func TestParse(t *testing.T) {
	t.Run("sample", func(t *testing.T) {
		f, err := Parse([]byte(sampleSeed))
		require.NoError(t, err)
		assert.Len(t, f.Users, 3)
		assert.Len(t, f.Teams, 1)
		require.Len(t, f.Projects, 1)
		assert.Equal(t, "WEB", f.Projects[0].Key)
	})

	t.Run("empty file", func(t *testing.T) {
		f, err := Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, f.Users)
	})

	t.Run("project without key", func(t *testing.T) {
		_, err := Parse([]byte("projects:\n  - name: Nameless\n    owner: a@example.com\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key is required")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("users:\n  - name: A\n    mail: a@example.com\n"))
		assert.Error(t, err)
	})
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	file, err := Parse([]byte(sampleSeed))
	require.NoError(t, err)

	res, err := f.seeder.Run(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, &Result{
		UsersCreated:    3,
		TeamsCreated:    1,
		ProjectsCreated: 1,
		MembersAdded:    3,
	}, res)

	alice, err := f.users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleAdmin, alice.Role(), "first account becomes admin")

	dave, err := f.users.GetByEmail(ctx, "dave@example.com")
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleDeveloper, dave.Role())

	sam, err := f.users.GetByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, authorization.RoleUser, sam.Role())

	platform, err := f.teams.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, platform.IsMember(dave.ID()))
	assert.True(t, platform.IsMember(sam.ID()))

	web, err := f.projects.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "WEB", web.Key())
	role, ok := web.MemberRole(sam.ID())
	require.True(t, ok)
	assert.Equal(t, membership.RoleSubmitter, role)

	t.Run("second run skips everything", func(t *testing.T) {
		res, err := f.seeder.Run(ctx, file)
		require.NoError(t, err)
		assert.Equal(t, &Result{
			UsersSkipped:    3,
			TeamsSkipped:    1,
			ProjectsSkipped: 1,
		}, res)

		teams, total, err := f.teams.ListForMember(ctx, alice.ID(), pageAll)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, teams, 1)
	})
}

func TestSeeder_Run_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{
			name: "unknown owner",
			file: `
teams:
  - name: Ghosts
    owner: nobody@example.com
`,
			wantErr: "no user with email",
		},
		{
			name: "undefined team",
			file: `
users:
  - name: Alice
    email: alice@example.com
    password: s3cretpass
projects:
  - name: Website
    key: WEB
    owner: alice@example.com
    team: Missing
`,
			wantErr: "not defined in the seed file",
		},
		{
			name: "unknown role",
			file: `
users:
  - name: Alice
    email: alice@example.com
    password: s3cretpass
    role: superuser
`,
			wantErr: "unknown role",
		},
		{
			name: "short password",
			file: `
users:
  - name: Alice
    email: alice@example.com
    password: short
`,
			wantErr: "alice@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := Parse([]byte(tt.file))
			require.NoError(t, err)

			_, err = newFixture().seeder.Run(ctx, file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
