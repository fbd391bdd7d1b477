package dto

import (
	"time"

	"github.com/trackr-io/trackr/internal/domain/team"
)

type MemberDTO struct {
	UserID   uint      `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type TeamDTO struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	OwnerID     uint        `json:"owner_id"`
	Members     []MemberDTO `json:"members"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func ToTeamDTO(t *team.Team) *TeamDTO {
	if t == nil {
		return nil
	}
	members := make([]MemberDTO, 0, len(t.Members()))
	for _, m := range t.Members() {
		members = append(members, MemberDTO{UserID: m.UserID, Role: m.Role.String(), JoinedAt: m.JoinedAt})
	}
	return &TeamDTO{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		OwnerID:     t.OwnerID(),
		Members:     members,
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func ToTeamDTOs(list []*team.Team) []*TeamDTO {
	out := make([]*TeamDTO, 0, len(list))
	for _, t := range list {
		out = append(out, ToTeamDTO(t))
	}
	return out
}
