package mappers

import (
	"github.com/trackr-io/trackr/internal/domain/notification"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
)

type NotificationMapper interface {
	ToModel(n *notification.Notification) *models.NotificationModel
	ToDomain(m *models.NotificationModel) *notification.Notification
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (NotificationMapperImpl) ToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:          n.ID(),
		RecipientID: n.RecipientID(),
		SenderID:    n.SenderID(),
		Type:        string(n.Type()),
		Title:       n.Title(),
		Message:     n.Message(),
		EntityType:  string(n.EntityType()),
		EntityID:    n.EntityID(),
		Link:        n.Link(),
		IsRead:      n.IsRead(),
		ReadAt:      n.ReadAt(),
		CreatedAt:   n.CreatedAt(),
	}
}

func (NotificationMapperImpl) ToDomain(m *models.NotificationModel) *notification.Notification {
	return notification.ReconstructNotification(
		m.ID, m.RecipientID,
		m.SenderID,
		notification.Type(m.Type),
		m.Title, m.Message,
		notification.EntityType(m.EntityType),
		m.EntityID,
		m.Link,
		m.IsRead,
		m.ReadAt,
		m.CreatedAt,
	)
}
