package project

import (
	"fmt"
	"strings"
)

// ConfigKind names one of the three per-project ticket enumerations.
type ConfigKind string

const (
	KindType     ConfigKind = "type"
	KindStatus   ConfigKind = "status"
	KindPriority ConfigKind = "priority"
)

func (k ConfigKind) IsValid() bool {
	return k == KindType || k == KindStatus || k == KindPriority
}

// ConfigEntry is one allowed value of a ticket type, status or priority.
type ConfigEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
	Icon  string `json:"icon,omitempty"`
}

func DefaultTicketStatuses() []ConfigEntry {
	return []ConfigEntry{
		{Name: "To Do", Color: "#718096", Order: 0},
		{Name: "In Progress", Color: "#4299E1", Order: 1},
		{Name: "Review", Color: "#805AD5", Order: 2},
		{Name: "Done", Color: "#38A169", Order: 3},
	}
}

func DefaultTicketPriorities() []ConfigEntry {
	return []ConfigEntry{
		{Name: "Low", Color: "#38A169", Order: 0},
		{Name: "Medium", Color: "#4299E1", Order: 1},
		{Name: "High", Color: "#DD6B20", Order: 2},
		{Name: "Critical", Color: "#E53E3E", Order: 3},
	}
}

func DefaultTicketTypes() []ConfigEntry {
	return []ConfigEntry{
		{Name: "Bug", Icon: "bug", Color: "#E53E3E", Order: 0},
		{Name: "Feature", Icon: "star", Color: "#38A169", Order: 1},
		{Name: "Task", Icon: "check-circle", Color: "#4299E1", Order: 2},
		{Name: "Epic", Icon: "lightning", Color: "#805AD5", Order: 3},
	}
}

// Registry holds the ticket enumerations of a project. Tickets reference
// entries by name only.
type Registry struct {
	types      []ConfigEntry
	statuses   []ConfigEntry
	priorities []ConfigEntry
}

// NewRegistry seeds any empty list with its defaults.
func NewRegistry(types, statuses, priorities []ConfigEntry) Registry {
	if len(types) == 0 {
		types = DefaultTicketTypes()
	}
	if len(statuses) == 0 {
		statuses = DefaultTicketStatuses()
	}
	if len(priorities) == 0 {
		priorities = DefaultTicketPriorities()
	}
	return Registry{
		types:      cloneEntries(types),
		statuses:   cloneEntries(statuses),
		priorities: cloneEntries(priorities),
	}
}

// ReconstructRegistry restores lists exactly as stored.
func ReconstructRegistry(types, statuses, priorities []ConfigEntry) Registry {
	return Registry{
		types:      cloneEntries(types),
		statuses:   cloneEntries(statuses),
		priorities: cloneEntries(priorities),
	}
}

func (r *Registry) list(kind ConfigKind) *[]ConfigEntry {
	switch kind {
	case KindType:
		return &r.types
	case KindStatus:
		return &r.statuses
	case KindPriority:
		return &r.priorities
	}
	return nil
}

// Entries returns a copy of one list.
func (r *Registry) Entries(kind ConfigKind) []ConfigEntry {
	l := r.list(kind)
	if l == nil {
		return nil
	}
	return cloneEntries(*l)
}

// Validate reports whether name is an exact, case-sensitive match for an
// entry of kind.
func (r *Registry) Validate(kind ConfigKind, name string) bool {
	l := r.list(kind)
	if l == nil {
		return false
	}
	for _, e := range *l {
		if e.Name == name {
			return true
		}
	}
	return false
}

func (r *Registry) ValidNames(kind ConfigKind) []string {
	l := r.list(kind)
	if l == nil {
		return nil
	}
	names := make([]string, len(*l))
	for i, e := range *l {
		names[i] = e.Name
	}
	return names
}

// Replace swaps a whole list. Existing tickets are not revalidated.
func (r *Registry) Replace(kind ConfigKind, entries []ConfigEntry) error {
	l := r.list(kind)
	if l == nil {
		return fmt.Errorf("unknown config kind %q", kind)
	}
	if len(entries) == 0 {
		return fmt.Errorf("ticket %s list cannot be empty", kind)
	}

	seen := make(map[string]struct{}, len(entries))
	cleaned := make([]ConfigEntry, len(entries))
	for i, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return fmt.Errorf("ticket %s name cannot be empty", kind)
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("duplicate ticket %s %q", kind, e.Name)
		}
		seen[e.Name] = struct{}{}
		cleaned[i] = e
	}
	*l = cleaned
	return nil
}

func cloneEntries(in []ConfigEntry) []ConfigEntry {
	if in == nil {
		return []ConfigEntry{}
	}
	out := make([]ConfigEntry, len(in))
	copy(out, in)
	return out
}
