package models

import (
	"time"

	"github.com/trackr-io/trackr/internal/shared/constants"
)

type NotificationModel struct {
	ID          uint   `gorm:"primarykey"`
	RecipientID uint   `gorm:"not null;index:idx_notification_recipient"`
	SenderID    *uint
	Type        string `gorm:"not null;size:30"`
	Title       string `gorm:"not null;size:200"`
	Message     string `gorm:"not null;size:1000"`
	EntityType  string `gorm:"size:20"`
	EntityID    uint
	Link        string `gorm:"size:500"`
	IsRead      bool   `gorm:"not null;default:false;index:idx_notification_recipient"`
	ReadAt      *time.Time
	CreatedAt   time.Time
}

func (NotificationModel) TableName() string {
	return constants.TableNotifications
}
