package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/trackr-io/trackr/internal/shared/constants"
)

// ProjectModel stores the ticket configuration registry as JSON columns.
type ProjectModel struct {
	ID               uint   `gorm:"primarykey"`
	Key              string `gorm:"column:project_key;uniqueIndex;not null;size:10"`
	Name             string `gorm:"not null;size:100"`
	Description      string `gorm:"type:text"`
	OwnerID          uint   `gorm:"not null;index"`
	TeamID           *uint  `gorm:"index"`
	Status           string `gorm:"not null;size:20;index"`
	Category         string `gorm:"not null;size:20"`
	StartDate        time.Time
	EndDate          *time.Time
	TicketTypes      datatypes.JSON
	TicketStatuses   datatypes.JSON
	TicketPriorities datatypes.JSON
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ProjectModel) TableName() string {
	return constants.TableProjects
}

type ProjectMemberModel struct {
	ID        uint   `gorm:"primarykey"`
	ProjectID uint   `gorm:"not null;uniqueIndex:idx_project_member"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_project_member;index"`
	Role      string `gorm:"not null;size:20"`
	Position  int    `gorm:"not null;default:0"`
	JoinedAt  time.Time
}

func (ProjectMemberModel) TableName() string {
	return constants.TableProjectMembers
}
