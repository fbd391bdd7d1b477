// Package activity holds the cross-entity audit trail. Records are written
// once and never updated.
package activity

import (
	"fmt"
	"time"

	"github.com/trackr-io/trackr/internal/shared/biztime"
)

type Action string

const (
	ActionCreated         Action = "created"
	ActionUpdated         Action = "updated"
	ActionDeleted         Action = "deleted"
	ActionCommented       Action = "commented"
	ActionUpdatedComment  Action = "updated_comment"
	ActionDeletedComment  Action = "deleted_comment"
	ActionAssigned        Action = "assigned"
	ActionStatusChanged   Action = "status_changed"
	ActionPriorityChanged Action = "priority_changed"
	ActionJoined          Action = "joined"
	ActionLeft            Action = "left"
	ActionUploaded        Action = "uploaded"
	ActionMentioned       Action = "mentioned"
	ActionLoggedIn        Action = "logged_in"
	ActionLoggedOut       Action = "logged_out"
)

var validActions = map[Action]struct{}{
	ActionCreated: {}, ActionUpdated: {}, ActionDeleted: {}, ActionCommented: {},
	ActionUpdatedComment: {}, ActionDeletedComment: {}, ActionAssigned: {},
	ActionStatusChanged: {}, ActionPriorityChanged: {}, ActionJoined: {}, ActionLeft: {},
	ActionUploaded: {}, ActionMentioned: {}, ActionLoggedIn: {}, ActionLoggedOut: {},
}

func (a Action) IsValid() bool {
	_, ok := validActions[a]
	return ok
}

type EntityType string

const (
	EntityTicket     EntityType = "ticket"
	EntityProject    EntityType = "project"
	EntityTeam       EntityType = "team"
	EntityUser       EntityType = "user"
	EntityComment    EntityType = "comment"
	EntityAttachment EntityType = "attachment"
)

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTicket, EntityProject, EntityTeam, EntityUser, EntityComment, EntityAttachment:
		return true
	}
	return false
}

// IsQueryable reports whether entity activity may be listed for e.
func (e EntityType) IsQueryable() bool {
	switch e {
	case EntityTicket, EntityProject, EntityTeam, EntityUser:
		return true
	}
	return false
}

// Details is free-form context stored with an activity.
type Details map[string]any

type Activity struct {
	id         uint
	actorID    uint
	action     Action
	entityType EntityType
	entityID   uint
	projectID  *uint
	teamID     *uint
	details    Details
	createdAt  time.Time
}

// Entry is the input of a new activity record.
type Entry struct {
	ActorID    uint
	Action     Action
	EntityType EntityType
	EntityID   uint
	ProjectID  *uint
	TeamID     *uint
	Details    Details
}

func NewActivity(e Entry) (*Activity, error) {
	if e.ActorID == 0 {
		return nil, fmt.Errorf("actor ID is required")
	}
	if !e.Action.IsValid() {
		return nil, fmt.Errorf("invalid activity action %q", e.Action)
	}
	if !e.EntityType.IsValid() {
		return nil, fmt.Errorf("invalid activity entity type %q", e.EntityType)
	}
	if e.EntityID == 0 {
		return nil, fmt.Errorf("entity ID is required")
	}
	if e.Details == nil {
		e.Details = Details{}
	}
	return &Activity{
		actorID:    e.ActorID,
		action:     e.Action,
		entityType: e.EntityType,
		entityID:   e.EntityID,
		projectID:  e.ProjectID,
		teamID:     e.TeamID,
		details:    e.Details,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructActivity(id uint, e Entry, createdAt time.Time) *Activity {
	if e.Details == nil {
		e.Details = Details{}
	}
	return &Activity{
		id:         id,
		actorID:    e.ActorID,
		action:     e.Action,
		entityType: e.EntityType,
		entityID:   e.EntityID,
		projectID:  e.ProjectID,
		teamID:     e.TeamID,
		details:    e.Details,
		createdAt:  createdAt,
	}
}

func (a *Activity) ID() uint               { return a.id }
func (a *Activity) ActorID() uint          { return a.actorID }
func (a *Activity) Action() Action         { return a.action }
func (a *Activity) EntityType() EntityType { return a.entityType }
func (a *Activity) EntityID() uint         { return a.entityID }
func (a *Activity) ProjectID() *uint       { return a.projectID }
func (a *Activity) TeamID() *uint          { return a.teamID }
func (a *Activity) Details() Details       { return a.details }
func (a *Activity) CreatedAt() time.Time   { return a.createdAt }

func (a *Activity) SetID(id uint) {
	if a.id == 0 {
		a.id = id
	}
}
