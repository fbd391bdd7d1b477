package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/shared/membership"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/domain/user"
	vo "github.com/trackr-io/trackr/internal/domain/user/valueobjects"
	"github.com/trackr-io/trackr/internal/shared/authorization"
)

// SeedUser stores a user with a throwaway hash.
func SeedUser(t *testing.T, repo user.Repository, name string, role authorization.UserRole) *user.User {
	t.Helper()
	email, err := vo.NewEmail(fmt.Sprintf("%s@example.com", name))
	require.NoError(t, err)
	u, err := user.NewUser(name, email, "hashed:"+name, role)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// SeedProject stores a project owned by ownerID with extra developer members.
func SeedProject(t *testing.T, repo project.Repository, name, key string, ownerID uint, members ...uint) *project.Project {
	t.Helper()
	p, err := project.NewProject(project.NewProjectParams{Name: name, Key: key, OwnerID: ownerID})
	require.NoError(t, err)
	for _, m := range members {
		_, err := p.AddMember(m, membership.RoleDeveloper)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func SeedTeam(t *testing.T, repo team.Repository, name string, ownerID uint, members ...uint) *team.Team {
	t.Helper()
	tm, err := team.NewTeam(name, "", ownerID)
	require.NoError(t, err)
	for _, m := range members {
		_, err := tm.AddMember(m, membership.RoleDeveloper)
		require.NoError(t, err)
	}
	require.NoError(t, repo.Create(context.Background(), tm))
	return tm
}

var ticketSeq atomic.Int64

// SeedTicket stores a ticket using the project's first configured values.
// Numbers come from a process-wide counter so they stay unique per store.
func SeedTicket(t *testing.T, repo ticket.Repository, p *project.Project, reporterID uint, assigneeID *uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:  p.ID(),
		ReporterID: reporterID,
		Title:      "Login fails",
		Type:       p.Config(project.KindType)[0].Name,
		Status:     p.Config(project.KindStatus)[0].Name,
		Priority:   p.Config(project.KindPriority)[0].Name,
		AssigneeID: assigneeID,
	})
	require.NoError(t, err)
	require.NoError(t, tk.SetNumber(fmt.Sprintf("%s-%d", p.Key(), ticketSeq.Add(1))))
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}
