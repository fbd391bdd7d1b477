// Package team holds the Team aggregate. Teams group users; a project linked
// to a team only admits that team's members.
package team

import (
	"fmt"
	"strings"
	"time"

	"github.com/trackr-io/trackr/internal/domain/shared/membership"
	"github.com/trackr-io/trackr/internal/shared/biztime"
)

type Team struct {
	id          uint
	name        string
	description string
	ownerID     uint
	members     membership.Roster
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTeam makes ownerID the first member with the admin role.
func NewTeam(name, description string, ownerID uint) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("team name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("team name exceeds maximum length of 100 characters")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}

	now := biztime.NowUTC()
	t := &Team{
		name:        name,
		description: description,
		ownerID:     ownerID,
		createdAt:   now,
		updatedAt:   now,
	}
	if _, err := t.members.Add(ownerID, membership.RoleAdmin); err != nil {
		return nil, err
	}
	return t, nil
}

func ReconstructTeam(
	id uint,
	name, description string,
	ownerID uint,
	members []membership.Member,
	createdAt, updatedAt time.Time,
) (*Team, error) {
	if id == 0 {
		return nil, fmt.Errorf("team ID cannot be zero")
	}
	return &Team{
		id:          id,
		name:        name,
		description: description,
		ownerID:     ownerID,
		members:     membership.NewRoster(members),
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (t *Team) ID() uint             { return t.id }
func (t *Team) Name() string         { return t.name }
func (t *Team) Description() string  { return t.description }
func (t *Team) OwnerID() uint        { return t.ownerID }
func (t *Team) CreatedAt() time.Time { return t.createdAt }
func (t *Team) UpdatedAt() time.Time { return t.updatedAt }

func (t *Team) Members() []membership.Member { return t.members.Members() }
func (t *Team) MemberIDs() []uint            { return t.members.UserIDs() }

func (t *Team) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("team ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("team ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Team) IsOwner(userID uint) bool  { return t.ownerID == userID }
func (t *Team) IsMember(userID uint) bool { return t.members.IsMember(userID) }
func (t *Team) IsAdmin(userID uint) bool  { return t.members.IsAdmin(userID) }

func (t *Team) AddMember(userID uint, role membership.Role) (bool, error) {
	added, err := t.members.Add(userID, role)
	if added {
		t.updatedAt = biztime.NowUTC()
	}
	return added, err
}

func (t *Team) RemoveMember(userID uint) (bool, error) {
	if t.IsOwner(userID) {
		return false, fmt.Errorf("cannot remove team owner")
	}
	removed := t.members.Remove(userID)
	if removed {
		t.updatedAt = biztime.NowUTC()
	}
	return removed, nil
}

func (t *Team) ChangeMemberRole(userID uint, role membership.Role) (bool, error) {
	if t.IsOwner(userID) {
		return false, fmt.Errorf("cannot change role of team owner")
	}
	changed, err := t.members.UpdateRole(userID, role)
	if changed {
		t.updatedAt = biztime.NowUTC()
	}
	return changed, err
}
