// Package membership answers who belongs to a project or team and with which
// role. Project and Team both embed a Roster.
package membership

import (
	"fmt"
	"time"

	"github.com/trackr-io/trackr/internal/shared/biztime"
)

// Role is a per-project or per-team role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleDeveloper Role = "developer"
	RoleSubmitter Role = "submitter"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDeveloper, RoleSubmitter:
		return true
	}
	return false
}

// ParseRole maps an empty string to RoleDeveloper and rejects unknown roles.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleDeveloper, nil
	}
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid member role %q", s)
	}
	return r, nil
}

type Member struct {
	UserID   uint
	Role     Role
	JoinedAt time.Time
}

// Roster is an ordered member list with at most one entry per user.
type Roster struct {
	members []Member
}

// NewRoster rebuilds a roster from stored members, keeping the first entry
// for any repeated user.
func NewRoster(members []Member) Roster {
	var r Roster
	for _, m := range members {
		if m.UserID == 0 || r.IsMember(m.UserID) {
			continue
		}
		r.members = append(r.members, m)
	}
	return r
}

func (r *Roster) find(userID uint) int {
	for i := range r.members {
		if r.members[i].UserID == userID {
			return i
		}
	}
	return -1
}

func (r *Roster) IsMember(userID uint) bool {
	return r.find(userID) >= 0
}

// IsAdmin is true only for a member whose role is admin.
func (r *Roster) IsAdmin(userID uint) bool {
	i := r.find(userID)
	return i >= 0 && r.members[i].Role == RoleAdmin
}

// RoleOf returns the member's role.
func (r *Roster) RoleOf(userID uint) (Role, bool) {
	if i := r.find(userID); i >= 0 {
		return r.members[i].Role, true
	}
	return "", false
}

// Add appends userID with role and reports whether the roster changed.
// Adding an existing member is a no-op.
func (r *Roster) Add(userID uint, role Role) (bool, error) {
	if userID == 0 {
		return false, fmt.Errorf("user ID is required")
	}
	if role == "" {
		role = RoleDeveloper
	}
	if !role.IsValid() {
		return false, fmt.Errorf("invalid member role %q", role)
	}
	if r.IsMember(userID) {
		return false, nil
	}
	r.members = append(r.members, Member{UserID: userID, Role: role, JoinedAt: biztime.NowUTC()})
	return true, nil
}

// Remove drops userID and reports whether it was present.
func (r *Roster) Remove(userID uint) bool {
	i := r.find(userID)
	if i < 0 {
		return false
	}
	r.members = append(r.members[:i], r.members[i+1:]...)
	return true
}

// UpdateRole changes a member's role. Non-members are left alone.
func (r *Roster) UpdateRole(userID uint, role Role) (bool, error) {
	if !role.IsValid() {
		return false, fmt.Errorf("invalid member role %q", role)
	}
	i := r.find(userID)
	if i < 0 || r.members[i].Role == role {
		return false, nil
	}
	r.members[i].Role = role
	return true, nil
}

func (r *Roster) Members() []Member {
	out := make([]Member, len(r.members))
	copy(out, r.members)
	return out
}

func (r *Roster) UserIDs() []uint {
	ids := make([]uint, len(r.members))
	for i, m := range r.members {
		ids[i] = m.UserID
	}
	return ids
}

func (r *Roster) Len() int {
	return len(r.members)
}
