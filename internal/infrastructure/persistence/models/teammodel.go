package models

import (
	"time"

	"github.com/trackr-io/trackr/internal/shared/constants"
)

type TeamModel struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"size:500"`
	OwnerID     uint   `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (TeamModel) TableName() string {
	return constants.TableTeams
}

// TeamMemberModel is one roster row. Position keeps the roster order.
type TeamMemberModel struct {
	ID       uint   `gorm:"primarykey"`
	TeamID   uint   `gorm:"not null;uniqueIndex:idx_team_member"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_team_member;index"`
	Role     string `gorm:"not null;size:20"`
	Position int    `gorm:"not null;default:0"`
	JoinedAt time.Time
}

func (TeamMemberModel) TableName() string {
	return constants.TableTeamMembers
}
