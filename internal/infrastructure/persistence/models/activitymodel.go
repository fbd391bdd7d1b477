package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/trackr-io/trackr/internal/shared/constants"
)

type ActivityModel struct {
	ID         uint   `gorm:"primarykey"`
	ActorID    uint   `gorm:"not null;index"`
	Action     string `gorm:"not null;size:30"`
	EntityType string `gorm:"not null;size:20;index:idx_activity_entity"`
	EntityID   uint   `gorm:"not null;index:idx_activity_entity"`
	ProjectID  *uint  `gorm:"index"`
	TeamID     *uint  `gorm:"index"`
	Details    datatypes.JSON
	CreatedAt  time.Time `gorm:"index"`
}

func (ActivityModel) TableName() string {
	return constants.TableActivities
}
