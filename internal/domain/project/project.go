// Package project holds the Project aggregate: its member roster, its owner
// protections and its ticket configuration registry.
package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/trackr-io/trackr/internal/domain/shared/membership"
	"github.com/trackr-io/trackr/internal/shared/biztime"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusArchived  Status = "archived"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusArchived || s == StatusCompleted
}

type Category string

const (
	CategorySoftware  Category = "software"
	CategoryBusiness  Category = "business"
	CategoryMarketing Category = "marketing"
	CategoryDesign    Category = "design"
	CategorySupport   Category = "support"
)

func (c Category) IsValid() bool {
	switch c {
	case CategorySoftware, CategoryBusiness, CategoryMarketing, CategoryDesign, CategorySupport:
		return true
	}
	return false
}

type Project struct {
	id          uint
	key         string
	name        string
	description string
	ownerID     uint
	teamID      *uint
	status      Status
	category    Category
	startDate   time.Time
	endDate     *time.Time
	members     membership.Roster
	registry    Registry
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProjectParams carries the creation input. Empty config lists are
// seeded with the defaults.
type NewProjectParams struct {
	Name             string
	Description      string
	Key              string
	OwnerID          uint
	TeamID           *uint
	Category         Category
	StartDate        *time.Time
	EndDate          *time.Time
	TicketTypes      []ConfigEntry
	TicketStatuses   []ConfigEntry
	TicketPriorities []ConfigEntry
}

func NewProject(p NewProjectParams) (*Project, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("project name exceeds maximum length of 100 characters")
	}
	if p.OwnerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	key, err := NormalizeKey(p.Key)
	if err != nil {
		return nil, err
	}
	category := p.Category
	if category == "" {
		category = CategorySoftware
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid project category %q", category)
	}

	now := biztime.NowUTC()
	start := now
	if p.StartDate != nil {
		start = p.StartDate.UTC()
	}
	if p.EndDate != nil && p.EndDate.Before(start) {
		return nil, fmt.Errorf("end date cannot be before start date")
	}

	registry := NewRegistry(p.TicketTypes, p.TicketStatuses, p.TicketPriorities)
	for _, kind := range []ConfigKind{KindType, KindStatus, KindPriority} {
		if err := registry.Replace(kind, registry.Entries(kind)); err != nil {
			return nil, err
		}
	}

	proj := &Project{
		key:         key,
		name:        name,
		description: p.Description,
		ownerID:     p.OwnerID,
		teamID:      p.TeamID,
		status:      StatusActive,
		category:    category,
		startDate:   start,
		endDate:     p.EndDate,
		registry:    registry,
		createdAt:   now,
		updatedAt:   now,
	}
	if _, err := proj.members.Add(p.OwnerID, membership.RoleAdmin); err != nil {
		return nil, err
	}
	return proj, nil
}

// ReconstructProject rebuilds a stored project. The owner is re-asserted as
// an admin member.
func ReconstructProject(
	id uint,
	key, name, description string,
	ownerID uint,
	teamID *uint,
	status Status,
	category Category,
	startDate time.Time,
	endDate *time.Time,
	members []membership.Member,
	registry Registry,
	createdAt, updatedAt time.Time,
) (*Project, error) {
	if id == 0 {
		return nil, fmt.Errorf("project ID cannot be zero")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}

	p := &Project{
		id:          id,
		key:         key,
		name:        name,
		description: description,
		ownerID:     ownerID,
		teamID:      teamID,
		status:      status,
		category:    category,
		startDate:   startDate,
		endDate:     endDate,
		members:     membership.NewRoster(members),
		registry:    registry,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
	if !p.members.IsMember(ownerID) {
		_, _ = p.members.Add(ownerID, membership.RoleAdmin)
	} else if !p.members.IsAdmin(ownerID) {
		_, _ = p.members.UpdateRole(ownerID, membership.RoleAdmin)
	}
	return p, nil
}

func (p *Project) ID() uint              { return p.id }
func (p *Project) Key() string           { return p.key }
func (p *Project) Name() string          { return p.name }
func (p *Project) Description() string   { return p.description }
func (p *Project) OwnerID() uint         { return p.ownerID }
func (p *Project) TeamID() *uint         { return p.teamID }
func (p *Project) Status() Status        { return p.status }
func (p *Project) Category() Category    { return p.category }
func (p *Project) StartDate() time.Time  { return p.startDate }
func (p *Project) EndDate() *time.Time   { return p.endDate }
func (p *Project) CreatedAt() time.Time  { return p.createdAt }
func (p *Project) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Project) Members() []membership.Member {
	return p.members.Members()
}

func (p *Project) MemberIDs() []uint {
	return p.members.UserIDs()
}

func (p *Project) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("project ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("project ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Project) IsOwner(userID uint) bool {
	return p.ownerID == userID
}

func (p *Project) IsMember(userID uint) bool {
	return p.members.IsMember(userID)
}

func (p *Project) IsAdmin(userID uint) bool {
	return p.members.IsAdmin(userID)
}

func (p *Project) MemberRole(userID uint) (membership.Role, bool) {
	return p.members.RoleOf(userID)
}

// AddMember is a no-op for existing members.
func (p *Project) AddMember(userID uint, role membership.Role) (bool, error) {
	added, err := p.members.Add(userID, role)
	if added {
		p.touch()
	}
	return added, err
}

// RemoveMember refuses to drop the owner.
func (p *Project) RemoveMember(userID uint) (bool, error) {
	if p.IsOwner(userID) {
		return false, fmt.Errorf("cannot remove project owner")
	}
	removed := p.members.Remove(userID)
	if removed {
		p.touch()
	}
	return removed, nil
}

// ChangeMemberRole refuses to re-role the owner.
func (p *Project) ChangeMemberRole(userID uint, role membership.Role) (bool, error) {
	if p.IsOwner(userID) {
		return false, fmt.Errorf("cannot change role of project owner")
	}
	changed, err := p.members.UpdateRole(userID, role)
	if changed {
		p.touch()
	}
	return changed, err
}

// Validate checks a ticket field value against the registry.
func (p *Project) Validate(kind ConfigKind, name string) bool {
	return p.registry.Validate(kind, name)
}

func (p *Project) ValidNames(kind ConfigKind) []string {
	return p.registry.ValidNames(kind)
}

func (p *Project) Config(kind ConfigKind) []ConfigEntry {
	return p.registry.Entries(kind)
}

func (p *Project) ReplaceConfig(kind ConfigKind, entries []ConfigEntry) error {
	if err := p.registry.Replace(kind, entries); err != nil {
		return err
	}
	p.touch()
	return nil
}

// DetailsPatch is a partial update of the descriptive fields.
type DetailsPatch struct {
	Name        *string
	Description *string
	Category    *Category
	Status      *Status
	StartDate   *time.Time
	EndDate     *time.Time
	ClearEnd    bool
}

// UpdateDetails applies patch and returns the names of the changed fields.
func (p *Project) UpdateDetails(patch DetailsPatch) ([]string, error) {
	var changed []string

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("project name is required")
		}
		if name != p.name {
			p.name = name
			changed = append(changed, "name")
		}
	}
	if patch.Description != nil && *patch.Description != p.description {
		p.description = *patch.Description
		changed = append(changed, "description")
	}
	if patch.Category != nil && *patch.Category != p.category {
		if !patch.Category.IsValid() {
			return nil, fmt.Errorf("invalid project category %q", *patch.Category)
		}
		p.category = *patch.Category
		changed = append(changed, "category")
	}
	if patch.Status != nil && *patch.Status != p.status {
		if !patch.Status.IsValid() {
			return nil, fmt.Errorf("invalid project status %q", *patch.Status)
		}
		p.status = *patch.Status
		changed = append(changed, "status")
	}
	if patch.StartDate != nil && !patch.StartDate.Equal(p.startDate) {
		p.startDate = patch.StartDate.UTC()
		changed = append(changed, "startDate")
	}
	if patch.ClearEnd && p.endDate != nil {
		p.endDate = nil
		changed = append(changed, "endDate")
	} else if patch.EndDate != nil && (p.endDate == nil || !patch.EndDate.Equal(*p.endDate)) {
		end := patch.EndDate.UTC()
		p.endDate = &end
		changed = append(changed, "endDate")
	}
	if p.endDate != nil && p.endDate.Before(p.startDate) {
		return nil, fmt.Errorf("end date cannot be before start date")
	}

	if len(changed) > 0 {
		p.touch()
	}
	return changed, nil
}

func (p *Project) touch() {
	p.updatedAt = biztime.NowUTC()
}
