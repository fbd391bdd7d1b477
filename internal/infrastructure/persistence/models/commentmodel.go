package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/trackr-io/trackr/internal/shared/constants"
)

type CommentModel struct {
	ID          uint   `gorm:"primarykey"`
	TicketID    uint   `gorm:"not null;index"`
	AuthorID    uint   `gorm:"not null;index"`
	Content     string `gorm:"type:text;not null"`
	Attachments datatypes.JSON
	Mentions    datatypes.JSON
	IsEdited    bool `gorm:"not null;default:false"`
	EditHistory datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CommentModel) TableName() string {
	return constants.TableComments
}
