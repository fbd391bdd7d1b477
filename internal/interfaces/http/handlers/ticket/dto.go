package ticket

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/trackr-io/trackr/internal/application/ticket/usecases"
	"github.com/trackr-io/trackr/internal/domain/ticket"
)

type CreateTicketRequest struct {
	ProjectID     uint       `json:"project_id" binding:"required"`
	Title         string     `json:"title" binding:"required,min=1,max=200"`
	Description   string     `json:"description" binding:"max=10000"`
	Type          string     `json:"type" binding:"required,max=50"`
	Status        string     `json:"status" binding:"required,max=50"`
	Priority      string     `json:"priority" binding:"required,max=50"`
	AssigneeID    *uint      `json:"assignee_id"`
	DueDate       *time.Time `json:"due_date"`
	EstimatedTime float64    `json:"estimated_time" binding:"gte=0"`
	Labels        []string   `json:"labels" binding:"omitempty,max=20,dive,min=1,max=50"`
}

func (r CreateTicketRequest) toCommand(actorID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		ActorID:       actorID,
		ProjectID:     r.ProjectID,
		Title:         r.Title,
		Description:   r.Description,
		Type:          r.Type,
		Status:        r.Status,
		Priority:      r.Priority,
		AssigneeID:    r.AssigneeID,
		DueDate:       r.DueDate,
		EstimatedTime: r.EstimatedTime,
		Labels:        r.Labels,
	}
}

// UpdateTicketRequest is a partial update. A JSON null for assignee_id or
// due_date clears the field; an absent key leaves it alone.
type UpdateTicketRequest struct {
	Title         *string         `json:"title" binding:"omitempty,min=1,max=200"`
	Description   *string         `json:"description" binding:"omitempty,max=10000"`
	Type          *string         `json:"type" binding:"omitempty,max=50"`
	Status        *string         `json:"status" binding:"omitempty,max=50"`
	Priority      *string         `json:"priority" binding:"omitempty,max=50"`
	AssigneeID    json.RawMessage `json:"assignee_id" swaggertype:"integer"`
	DueDate       json.RawMessage `json:"due_date" swaggertype:"string"`
	EstimatedTime *float64        `json:"estimated_time" binding:"omitempty,gte=0"`
	Labels        *[]string       `json:"labels" binding:"omitempty,max=20,dive,min=1,max=50"`
}

func (r UpdateTicketRequest) toPatch() (ticket.Patch, error) {
	p := ticket.Patch{
		Title:         r.Title,
		Description:   r.Description,
		Type:          r.Type,
		Status:        r.Status,
		Priority:      r.Priority,
		EstimatedTime: r.EstimatedTime,
		Labels:        r.Labels,
	}

	if len(r.AssigneeID) > 0 {
		if isNull(r.AssigneeID) {
			p.ClearAssignee = true
		} else {
			var id uint
			if err := json.Unmarshal(r.AssigneeID, &id); err != nil || id == 0 {
				return p, errInvalidField("assignee_id")
			}
			p.AssigneeID = &id
		}
	}

	if len(r.DueDate) > 0 {
		if isNull(r.DueDate) {
			p.ClearDueDate = true
		} else {
			var due time.Time
			if err := json.Unmarshal(r.DueDate, &due); err != nil {
				return p, errInvalidField("due_date")
			}
			p.DueDate = &due
		}
	}

	return p, nil
}

type AssignTicketRequest struct {
	AssigneeID *uint `json:"assignee_id"`
}

type TransitionStatusRequest struct {
	Status string `json:"status" binding:"required,max=50"`
}

type AddWatcherRequest struct {
	UserID uint `json:"user_id"`
}

type AddAttachmentRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	URL  string `json:"url" binding:"required,url,max=2048"`
	Type string `json:"type" binding:"max=100"`
	Size int64  `json:"size" binding:"gte=0"`
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
