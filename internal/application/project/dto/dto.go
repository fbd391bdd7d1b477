package dto

import (
	"time"

	"github.com/trackr-io/trackr/internal/domain/project"
)

type MemberDTO struct {
	UserID   uint      `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type ConfigEntryDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
	Icon  string `json:"icon,omitempty"`
}

type ProjectDTO struct {
	ID               uint             `json:"id"`
	Key              string           `json:"key"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	OwnerID          uint             `json:"owner_id"`
	TeamID           *uint            `json:"team_id,omitempty"`
	Status           string           `json:"status"`
	Category         string           `json:"category"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          *time.Time       `json:"end_date,omitempty"`
	Members          []MemberDTO      `json:"members"`
	TicketTypes      []ConfigEntryDTO `json:"ticket_types"`
	TicketStatuses   []ConfigEntryDTO `json:"ticket_statuses"`
	TicketPriorities []ConfigEntryDTO `json:"ticket_priorities"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func ToConfigEntryDTOs(entries []project.ConfigEntry) []ConfigEntryDTO {
	out := make([]ConfigEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ConfigEntryDTO{Name: e.Name, Color: e.Color, Order: e.Order, Icon: e.Icon})
	}
	return out
}

// FromConfigEntryDTOs keeps the caller's order; a zero Order takes the list position.
func FromConfigEntryDTOs(in []ConfigEntryDTO) []project.ConfigEntry {
	out := make([]project.ConfigEntry, 0, len(in))
	for i, e := range in {
		order := e.Order
		if order == 0 {
			order = i
		}
		out = append(out, project.ConfigEntry{Name: e.Name, Color: e.Color, Order: order, Icon: e.Icon})
	}
	return out
}

func ToProjectDTO(p *project.Project) *ProjectDTO {
	if p == nil {
		return nil
	}
	members := make([]MemberDTO, 0, len(p.Members()))
	for _, m := range p.Members() {
		members = append(members, MemberDTO{UserID: m.UserID, Role: m.Role.String(), JoinedAt: m.JoinedAt})
	}
	return &ProjectDTO{
		ID:               p.ID(),
		Key:              p.Key(),
		Name:             p.Name(),
		Description:      p.Description(),
		OwnerID:          p.OwnerID(),
		TeamID:           p.TeamID(),
		Status:           string(p.Status()),
		Category:         string(p.Category()),
		StartDate:        p.StartDate(),
		EndDate:          p.EndDate(),
		Members:          members,
		TicketTypes:      ToConfigEntryDTOs(p.Config(project.KindType)),
		TicketStatuses:   ToConfigEntryDTOs(p.Config(project.KindStatus)),
		TicketPriorities: ToConfigEntryDTOs(p.Config(project.KindPriority)),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func ToProjectDTOs(list []*project.Project) []*ProjectDTO {
	out := make([]*ProjectDTO, 0, len(list))
	for _, p := range list {
		out = append(out, ToProjectDTO(p))
	}
	return out
}
