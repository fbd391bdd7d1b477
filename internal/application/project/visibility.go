// Package project holds project use cases and the visibility rules that
// decide which projects a caller may see.
package project

import (
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/shared/authorization"
)

// VisibilityFilter decides project visibility for one caller. Allows is
// used in memory; Query is handed to the repository.
type VisibilityFilter interface {
	Allows(p *project.Project) bool
	Query() project.VisibilityQuery
}

// VisibilityFor maps a global role to its filter. RoleUser sees projects
// as a submitter.
func VisibilityFor(role authorization.UserRole, actorID uint) VisibilityFilter {
	switch role {
	case authorization.RoleAdmin:
		return adminVisibility{}
	case authorization.RoleDeveloper:
		return developerVisibility{actorID: actorID}
	default:
		return submitterVisibility{actorID: actorID}
	}
}

type adminVisibility struct{}

func (adminVisibility) Allows(*project.Project) bool { return true }

func (adminVisibility) Query() project.VisibilityQuery {
	return project.VisibilityQuery{All: true}
}

type developerVisibility struct {
	actorID uint
}

func (v developerVisibility) Allows(p *project.Project) bool {
	return p.IsOwner(v.actorID) || p.IsMember(v.actorID)
}

func (v developerVisibility) Query() project.VisibilityQuery {
	return project.VisibilityQuery{UserID: v.actorID, IncludeOwned: true}
}

type submitterVisibility struct {
	actorID uint
}

func (v submitterVisibility) Allows(p *project.Project) bool {
	return p.IsMember(v.actorID)
}

func (v submitterVisibility) Query() project.VisibilityQuery {
	return project.VisibilityQuery{UserID: v.actorID}
}
