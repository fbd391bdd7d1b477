// Package notification holds per-recipient in-app notifications.
package notification

import (
	"fmt"
	"time"

	"github.com/trackr-io/trackr/internal/shared/biztime"
)

type Type string

const (
	TypeTicketAssigned      Type = "ticket_assigned"
	TypeTicketUpdate        Type = "ticket_update"
	TypeTicketComment       Type = "ticket_comment"
	TypeTicketStatusChanged Type = "ticket_status_changed"
	TypeMentioned           Type = "mentioned"
	TypeProjectInvite       Type = "project_invite"
	TypeProjectUpdate       Type = "project_update"
	TypeTeamInvite          Type = "team_invite"
	TypeTeamUpdate          Type = "team_update"
	TypeSystem              Type = "system"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeTicketAssigned, TypeTicketUpdate, TypeTicketComment, TypeTicketStatusChanged,
		TypeMentioned, TypeProjectInvite, TypeProjectUpdate, TypeTeamInvite, TypeTeamUpdate, TypeSystem:
		return true
	}
	return false
}

type EntityType string

const (
	EntityTicket  EntityType = "ticket"
	EntityProject EntityType = "project"
	EntityTeam    EntityType = "team"
	EntityUser    EntityType = "user"
	EntityComment EntityType = "comment"
	EntitySystem  EntityType = "system"
)

// Message is the recipient-independent part of a notification.
type Message struct {
	SenderID   uint
	Type       Type
	Title      string
	Body       string
	EntityType EntityType
	EntityID   uint
	Link       string
}

type Notification struct {
	id          uint
	recipientID uint
	senderID    *uint
	ntype       Type
	title       string
	message     string
	entityType  EntityType
	entityID    uint
	link        string
	read        bool
	readAt      *time.Time
	createdAt   time.Time
}

func NewNotification(recipientID uint, m Message) (*Notification, error) {
	if recipientID == 0 {
		return nil, fmt.Errorf("recipient ID is required")
	}
	if !m.Type.IsValid() {
		return nil, fmt.Errorf("invalid notification type %q", m.Type)
	}
	if m.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(m.Title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if m.Body == "" {
		return nil, fmt.Errorf("message is required")
	}
	if m.EntityType == "" {
		m.EntityType = EntitySystem
	}

	var sender *uint
	if m.SenderID != 0 {
		s := m.SenderID
		sender = &s
	}
	return &Notification{
		recipientID: recipientID,
		senderID:    sender,
		ntype:       m.Type,
		title:       m.Title,
		message:     m.Body,
		entityType:  m.EntityType,
		entityID:    m.EntityID,
		link:        m.Link,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructNotification(
	id, recipientID uint,
	senderID *uint,
	ntype Type,
	title, message string,
	entityType EntityType,
	entityID uint,
	link string,
	read bool,
	readAt *time.Time,
	createdAt time.Time,
) *Notification {
	return &Notification{
		id:          id,
		recipientID: recipientID,
		senderID:    senderID,
		ntype:       ntype,
		title:       title,
		message:     message,
		entityType:  entityType,
		entityID:    entityID,
		link:        link,
		read:        read,
		readAt:      readAt,
		createdAt:   createdAt,
	}
}

func (n *Notification) ID() uint               { return n.id }
func (n *Notification) RecipientID() uint      { return n.recipientID }
func (n *Notification) SenderID() *uint        { return n.senderID }
func (n *Notification) Type() Type             { return n.ntype }
func (n *Notification) Title() string          { return n.title }
func (n *Notification) Message() string        { return n.message }
func (n *Notification) EntityType() EntityType { return n.entityType }
func (n *Notification) EntityID() uint         { return n.entityID }
func (n *Notification) Link() string           { return n.link }
func (n *Notification) IsRead() bool           { return n.read }
func (n *Notification) ReadAt() *time.Time     { return n.readAt }
func (n *Notification) CreatedAt() time.Time   { return n.createdAt }

func (n *Notification) SetID(id uint) {
	if n.id == 0 {
		n.id = id
	}
}

func (n *Notification) BelongsTo(userID uint) bool {
	return n.recipientID == userID
}

// MarkRead reports whether the flag flipped.
func (n *Notification) MarkRead() bool {
	if n.read {
		return false
	}
	now := biztime.NowUTC()
	n.read = true
	n.readAt = &now
	return true
}
