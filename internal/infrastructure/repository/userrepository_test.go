package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/application/testutil"
	"github.com/trackr-io/trackr/internal/domain/user"
	vo "github.com/trackr-io/trackr/internal/domain/user/valueobjects"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	apperrors "github.com/trackr-io/trackr/internal/shared/errors"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	alice := testutil.SeedUser(t, repo, "alice", authorization.RoleAdmin)
	require.NotZero(t, alice.ID())

	got, err := repo.GetByID(ctx, alice.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Name())
	assert.Equal(t, authorization.RoleAdmin, got.Role())

	byEmail, err := repo.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, alice.ID(), byEmail.ID())

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_DuplicateEmailIsConflict(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	testutil.SeedUser(t, repo, "bob", authorization.RoleDeveloper)

	email, err := vo.NewEmail("bob@example.com")
	require.NoError(t, err)
	dup, err := user.NewUser("Bob Again", email, "hash", authorization.RoleUser)
	require.NoError(t, err)

	err = repo.Create(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestUserRepository_SearchByName(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	anna := testutil.SeedUser(t, repo, "anna", authorization.RoleDeveloper)
	hannah := testutil.SeedUser(t, repo, "hannah", authorization.RoleDeveloper)
	testutil.SeedUser(t, repo, "zoe", authorization.RoleDeveloper)

	all, err := repo.SearchByName(ctx, "ANN", nil, 20)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, anna.ID(), all[0].ID())

	limited, err := repo.SearchByName(ctx, "ann", []uint{hannah.ID()}, 20)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, hannah.ID(), limited[0].ID())
}

func TestUserRepository_UpdatePersistsProfile(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	u := testutil.SeedUser(t, repo, "carol", authorization.RoleUser)

	require.NoError(t, u.UpdateProfile(user.ProfilePatch{Bio: ptr("QA lead")}))
	u.RecordLogin()
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "QA lead", got.Bio())
	assert.NotNil(t, got.LastLoginAt())
}
