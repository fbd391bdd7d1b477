package project

import (
	"time"

	"github.com/trackr-io/trackr/internal/application/project/dto"
	"github.com/trackr-io/trackr/internal/application/project/usecases"
	"github.com/trackr-io/trackr/internal/shared/authorization"
)

type ConfigEntryRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color" binding:"hexcolor_or_empty"`
	Order int    `json:"order" binding:"gte=0"`
	Icon  string `json:"icon" binding:"max=50"`
}

type CreateProjectRequest struct {
	Name             string               `json:"name" binding:"required,min=2,max=100"`
	Description      string               `json:"description" binding:"max=2000"`
	Key              string               `json:"key" binding:"project_key"`
	TeamID           *uint                `json:"team_id"`
	Category         string               `json:"category" binding:"max=50"`
	StartDate        *time.Time           `json:"start_date"`
	EndDate          *time.Time           `json:"end_date"`
	TicketTypes      []ConfigEntryRequest `json:"ticket_types" binding:"omitempty,dive"`
	TicketStatuses   []ConfigEntryRequest `json:"ticket_statuses" binding:"omitempty,dive"`
	TicketPriorities []ConfigEntryRequest `json:"ticket_priorities" binding:"omitempty,dive"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Category    *string    `json:"category" binding:"omitempty,max=50"`
	Status      *string    `json:"status" binding:"omitempty,oneof=active archived completed"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	ClearEnd    bool       `json:"clear_end_date"`
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=admin manager developer submitter"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager developer submitter"`
}

type TicketConfigRequest struct {
	Entries []ConfigEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

func toConfigEntries(in []ConfigEntryRequest) []dto.ConfigEntryDTO {
	if in == nil {
		return nil
	}
	out := make([]dto.ConfigEntryDTO, 0, len(in))
	for _, e := range in {
		out = append(out, dto.ConfigEntryDTO{Name: e.Name, Color: e.Color, Order: e.Order, Icon: e.Icon})
	}
	return out
}

func (r CreateProjectRequest) toCommand(actorID uint, role authorization.UserRole) usecases.CreateProjectCommand {
	return usecases.CreateProjectCommand{
		ActorID:          actorID,
		ActorRole:        role,
		Name:             r.Name,
		Description:      r.Description,
		Key:              r.Key,
		TeamID:           r.TeamID,
		Category:         r.Category,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		TicketTypes:      toConfigEntries(r.TicketTypes),
		TicketStatuses:   toConfigEntries(r.TicketStatuses),
		TicketPriorities: toConfigEntries(r.TicketPriorities),
	}
}

func (r UpdateProjectRequest) toCommand(actorID, projectID uint) usecases.UpdateProjectCommand {
	return usecases.UpdateProjectCommand{
		ActorID:     actorID,
		ProjectID:   projectID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Status:      r.Status,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		ClearEnd:    r.ClearEnd,
	}
}
