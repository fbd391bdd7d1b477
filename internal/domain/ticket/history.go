package ticket

import (
	"fmt"
	"time"

	"github.com/trackr-io/trackr/internal/shared/biztime"
)

// HistoryAction classifies a history entry.
type HistoryAction string

const (
	ActionCreated           HistoryAction = "created"
	ActionUpdated           HistoryAction = "updated"
	ActionAssigned          HistoryAction = "assigned"
	ActionStatusChanged     HistoryAction = "status_changed"
	ActionAttachmentAdded   HistoryAction = "attachment_added"
	ActionAttachmentRemoved HistoryAction = "attachment_removed"
)

func (a HistoryAction) IsValid() bool {
	switch a {
	case ActionCreated, ActionUpdated, ActionAssigned, ActionStatusChanged,
		ActionAttachmentAdded, ActionAttachmentRemoved:
		return true
	}
	return false
}

// Tracked field names used as Changes keys.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldType          = "type"
	FieldStatus        = "status"
	FieldPriority      = "priority"
	FieldAssignee      = "assignee"
	FieldDueDate       = "dueDate"
	FieldEstimatedTime = "estimatedTime"
	FieldLabels        = "labels"
	FieldAttachment    = "attachment"
)

// FieldChange records one field's value before and after a mutation.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// Changes maps a tracked field name to its change.
type Changes map[string]FieldChange

func (c Changes) IsEmpty() bool {
	return len(c) == 0
}

// HistoryEntry is one immutable line of a ticket's audit trail.
type HistoryEntry struct {
	id        uint
	ticketID  uint
	actorID   uint
	action    HistoryAction
	changes   Changes
	createdAt time.Time
}

func NewHistoryEntry(ticketID, actorID uint, action HistoryAction, changes Changes) (*HistoryEntry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if actorID == 0 {
		return nil, fmt.Errorf("actor ID is required")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid history action %q", action)
	}
	if changes == nil {
		changes = Changes{}
	}
	return &HistoryEntry{
		ticketID:  ticketID,
		actorID:   actorID,
		action:    action,
		changes:   changes,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructHistoryEntry(id, ticketID, actorID uint, action HistoryAction, changes Changes, createdAt time.Time) *HistoryEntry {
	if changes == nil {
		changes = Changes{}
	}
	return &HistoryEntry{
		id:        id,
		ticketID:  ticketID,
		actorID:   actorID,
		action:    action,
		changes:   changes,
		createdAt: createdAt,
	}
}

func (h *HistoryEntry) ID() uint               { return h.id }
func (h *HistoryEntry) TicketID() uint         { return h.ticketID }
func (h *HistoryEntry) ActorID() uint          { return h.actorID }
func (h *HistoryEntry) Action() HistoryAction  { return h.action }
func (h *HistoryEntry) CreatedAt() time.Time   { return h.createdAt }

func (h *HistoryEntry) Changes() Changes {
	out := make(Changes, len(h.changes))
	for k, v := range h.changes {
		out[k] = v
	}
	return out
}

func (h *HistoryEntry) SetID(id uint) {
	if h.id == 0 {
		h.id = id
	}
}
