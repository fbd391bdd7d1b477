package membership

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"", RoleDeveloper, false},
		{"admin", RoleAdmin, false},
		{"manager", RoleManager, false},
		{"submitter", RoleSubmitter, false},
		{"owner", "", true},
		{"Admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoster_AddIsIdempotent(t *testing.T) {
	var r Roster

	added, err := r.Add(7, RoleSubmitter)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = r.Add(7, RoleAdmin)
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, 1, r.Len())
	role, _ := r.RoleOf(7)
	assert.Equal(t, RoleSubmitter, role)
}

func TestRoster_AddDefaultsToDeveloper(t *testing.T) {
	var r Roster
	_, err := r.Add(3, "")
	require.NoError(t, err)

	role, ok := r.RoleOf(3)
	assert.True(t, ok)
	assert.Equal(t, RoleDeveloper, role)
}

func TestRoster_AddRejectsBadInput(t *testing.T) {
	var r Roster
	_, err := r.Add(0, RoleAdmin)
	assert.Error(t, err)
	_, err = r.Add(1, "owner")
	assert.Error(t, err)
	assert.Zero(t, r.Len())
}

func TestRoster_RemoveIsIdempotent(t *testing.T) {
	r := NewRoster([]Member{{UserID: 1, Role: RoleAdmin}, {UserID: 2, Role: RoleDeveloper}})

	assert.True(t, r.Remove(2))
	assert.False(t, r.Remove(2))
	assert.False(t, r.Remove(99))
	assert.Equal(t, []uint{1}, r.UserIDs())
}

func TestRoster_IsAdminRequiresMembership(t *testing.T) {
	r := NewRoster([]Member{{UserID: 1, Role: RoleAdmin}, {UserID: 2, Role: RoleManager}})

	assert.True(t, r.IsAdmin(1))
	assert.False(t, r.IsAdmin(2))
	assert.False(t, r.IsAdmin(3))
	assert.True(t, r.IsMember(2))
	assert.False(t, r.IsMember(3))
}

func TestRoster_UpdateRole(t *testing.T) {
	r := NewRoster([]Member{{UserID: 1, Role: RoleDeveloper}})

	changed, err := r.UpdateRole(1, RoleManager)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = r.UpdateRole(42, RoleAdmin)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, r.IsMember(42))

	_, err = r.UpdateRole(1, "boss")
	assert.Error(t, err)
}

func TestNewRoster_DropsDuplicates(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRoster([]Member{
		{UserID: 1, Role: RoleAdmin, JoinedAt: at},
		{UserID: 1, Role: RoleSubmitter},
		{UserID: 0, Role: RoleDeveloper},
	})

	members := r.Members()
	require.Len(t, members, 1)
	assert.Equal(t, RoleAdmin, members[0].Role)
	assert.Equal(t, at, members[0].JoinedAt)
}

func TestRoster_MembersReturnsCopy(t *testing.T) {
	r := NewRoster([]Member{{UserID: 1, Role: RoleAdmin}})
	m := r.Members()
	m[0].Role = RoleSubmitter
	assert.True(t, r.IsAdmin(1))
}
