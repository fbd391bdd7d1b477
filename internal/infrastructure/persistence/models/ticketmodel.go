package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/trackr-io/trackr/internal/shared/constants"
)

type TicketModel struct {
	ID            uint   `gorm:"primarykey"`
	ProjectID     uint   `gorm:"not null;index"`
	Number        string `gorm:"column:ticket_number;uniqueIndex;not null;size:32"`
	Title         string `gorm:"not null;size:200"`
	Description   string `gorm:"type:text"`
	Type          string `gorm:"column:ticket_type;not null;size:50"`
	Status        string `gorm:"not null;size:50;index"`
	Priority      string `gorm:"not null;size:50;index"`
	ReporterID    uint   `gorm:"not null;index"`
	AssigneeID    *uint  `gorm:"index"`
	DueDate       *time.Time
	EstimatedTime float64 `gorm:"not null;default:0"`
	Labels        datatypes.JSON
	Watchers      datatypes.JSON
	Attachments   datatypes.JSON
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

// TicketHistoryModel rows are never updated.
type TicketHistoryModel struct {
	ID        uint   `gorm:"primarykey"`
	TicketID  uint   `gorm:"not null;index"`
	ActorID   uint   `gorm:"not null"`
	Action    string `gorm:"not null;size:30"`
	Changes   datatypes.JSON
	CreatedAt time.Time
}

func (TicketHistoryModel) TableName() string {
	return constants.TableTicketHistory
}

// TicketSequenceModel holds the last issued value per numbering scope.
type TicketSequenceModel struct {
	Scope     string `gorm:"primaryKey;size:64"`
	Value     int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (TicketSequenceModel) TableName() string {
	return constants.TableTicketSeqs
}
