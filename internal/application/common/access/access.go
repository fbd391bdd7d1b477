// Package access holds the membership checks every use case runs before a
// write. A failed check is always a forbidden error.
package access

import (
	"context"
	"fmt"

	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/shared/errors"
)

// ProjectMember loads the project and requires userID to be a member.
func ProjectMember(ctx context.Context, repo project.Repository, projectID, userID uint) (*project.Project, error) {
	p, err := LoadProject(ctx, repo, projectID)
	if err != nil {
		return nil, err
	}
	if !p.IsMember(userID) {
		return nil, errors.NewForbiddenError("not a member of this project")
	}
	return p, nil
}

// ProjectAdmin loads the project and requires userID to be an admin member.
func ProjectAdmin(ctx context.Context, repo project.Repository, projectID, userID uint) (*project.Project, error) {
	p, err := LoadProject(ctx, repo, projectID)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin(userID) {
		return nil, errors.NewForbiddenError("project admin access required")
	}
	return p, nil
}

func LoadProject(ctx context.Context, repo project.Repository, projectID uint) (*project.Project, error) {
	p, err := repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, Wrap(err, "failed to get project")
	}
	if p == nil {
		return nil, errors.NewNotFoundError("project not found")
	}
	return p, nil
}

// TeamMember loads the team and requires userID to be a member.
func TeamMember(ctx context.Context, repo team.Repository, teamID, userID uint) (*team.Team, error) {
	t, err := LoadTeam(ctx, repo, teamID)
	if err != nil {
		return nil, err
	}
	if !t.IsMember(userID) {
		return nil, errors.NewForbiddenError("not a member of this team")
	}
	return t, nil
}

func TeamAdmin(ctx context.Context, repo team.Repository, teamID, userID uint) (*team.Team, error) {
	t, err := LoadTeam(ctx, repo, teamID)
	if err != nil {
		return nil, err
	}
	if !t.IsAdmin(userID) {
		return nil, errors.NewForbiddenError("team admin access required")
	}
	return t, nil
}

func LoadTeam(ctx context.Context, repo team.Repository, teamID uint) (*team.Team, error) {
	t, err := repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, Wrap(err, "failed to get team")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("team not found")
	}
	return t, nil
}

// CanSeeUser reports whether actor may read target's activity: always for
// themself, otherwise only when they share a project or a team.
func CanSeeUser(ctx context.Context, projects project.Repository, teams team.Repository, actorID, targetID uint) (bool, error) {
	if actorID == targetID {
		return true, nil
	}
	shared, err := projects.ShareMembership(ctx, actorID, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to check project membership: %w", err)
	}
	if shared {
		return true, nil
	}
	shared, err = teams.ShareMembership(ctx, actorID, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return shared, nil
}

// Wrap passes AppErrors through and turns anything else into an internal error.
func Wrap(err error, message string) error {
	if errors.IsAppError(err) {
		return err
	}
	return errors.NewInternalError(message, err.Error())
}
