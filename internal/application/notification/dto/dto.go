package dto

import (
	"time"

	"github.com/trackr-io/trackr/internal/domain/notification"
)

type NotificationDTO struct {
	ID         uint       `json:"id"`
	SenderID   *uint      `json:"sender_id,omitempty"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	EntityType string     `json:"entity_type"`
	EntityID   uint       `json:"entity_id"`
	Link       string     `json:"link,omitempty"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToNotificationDTO(n *notification.Notification) *NotificationDTO {
	if n == nil {
		return nil
	}
	return &NotificationDTO{
		ID:         n.ID(),
		SenderID:   n.SenderID(),
		Type:       string(n.Type()),
		Title:      n.Title(),
		Message:    n.Message(),
		EntityType: string(n.EntityType()),
		EntityID:   n.EntityID(),
		Link:       n.Link(),
		Read:       n.IsRead(),
		ReadAt:     n.ReadAt(),
		CreatedAt:  n.CreatedAt(),
	}
}

func ToNotificationDTOs(list []*notification.Notification) []*NotificationDTO {
	out := make([]*NotificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, ToNotificationDTO(n))
	}
	return out
}
