package dto

import (
	"time"

	"github.com/trackr-io/trackr/internal/domain/ticket"
)

type AttachmentDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedBy uint      `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type TicketDTO struct {
	ID            uint            `json:"id"`
	ProjectID     uint            `json:"project_id"`
	TicketNumber  string          `json:"ticket_number"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Priority      string          `json:"priority"`
	ReporterID    uint            `json:"reporter_id"`
	AssigneeID    *uint           `json:"assignee_id"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	EstimatedTime float64         `json:"estimated_time"`
	Labels        []string        `json:"labels"`
	Watchers      []uint          `json:"watchers"`
	Attachments   []AttachmentDTO `json:"attachments"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type FieldChangeDTO struct {
	From any `json:"from"`
	To   any `json:"to"`
}

type HistoryEntryDTO struct {
	ID        uint                      `json:"id"`
	TicketID  uint                      `json:"ticket_id"`
	ActorID   uint                      `json:"actor_id"`
	Action    string                    `json:"action"`
	Changes   map[string]FieldChangeDTO `json:"changes"`
	CreatedAt time.Time                 `json:"created_at"`
}

func ToAttachmentDTO(a ticket.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:         a.ID,
		Name:       a.Name,
		URL:        a.URL,
		Type:       a.Type,
		Size:       a.Size,
		UploadedBy: a.UploadedBy,
		UploadedAt: a.UploadedAt,
	}
}

func ToAttachmentDTOs(list []ticket.Attachment) []AttachmentDTO {
	out := make([]AttachmentDTO, 0, len(list))
	for _, a := range list {
		out = append(out, ToAttachmentDTO(a))
	}
	return out
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		ID:            t.ID(),
		ProjectID:     t.ProjectID(),
		TicketNumber:  t.Number(),
		Title:         t.Title(),
		Description:   t.Description(),
		Type:          t.Type(),
		Status:        t.Status(),
		Priority:      t.Priority(),
		ReporterID:    t.ReporterID(),
		AssigneeID:    t.AssigneeID(),
		DueDate:       t.DueDate(),
		EstimatedTime: t.EstimatedTime(),
		Labels:        t.Labels(),
		Watchers:      t.Watchers(),
		Attachments:   ToAttachmentDTOs(t.Attachments()),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

func ToTicketDTOs(list []*ticket.Ticket) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(list))
	for _, t := range list {
		out = append(out, ToTicketDTO(t))
	}
	return out
}

func ToHistoryEntryDTO(h *ticket.HistoryEntry) *HistoryEntryDTO {
	changes := make(map[string]FieldChangeDTO, len(h.Changes()))
	for field, c := range h.Changes() {
		changes[field] = FieldChangeDTO{From: c.From, To: c.To}
	}
	return &HistoryEntryDTO{
		ID:        h.ID(),
		TicketID:  h.TicketID(),
		ActorID:   h.ActorID(),
		Action:    string(h.Action()),
		Changes:   changes,
		CreatedAt: h.CreatedAt(),
	}
}

func ToHistoryEntryDTOs(list []*ticket.HistoryEntry) []*HistoryEntryDTO {
	out := make([]*HistoryEntryDTO, 0, len(list))
	for _, h := range list {
		out = append(out, ToHistoryEntryDTO(h))
	}
	return out
}
