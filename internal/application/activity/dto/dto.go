package dto

import (
	"time"

	"github.com/trackr-io/trackr/internal/domain/activity"
)

type ActivityDTO struct {
	ID         uint           `json:"id"`
	ActorID    uint           `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   uint           `json:"entity_id"`
	ProjectID  *uint          `json:"project_id,omitempty"`
	TeamID     *uint          `json:"team_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func ToActivityDTO(a *activity.Activity) *ActivityDTO {
	if a == nil {
		return nil
	}
	return &ActivityDTO{
		ID:         a.ID(),
		ActorID:    a.ActorID(),
		Action:     string(a.Action()),
		EntityType: string(a.EntityType()),
		EntityID:   a.EntityID(),
		ProjectID:  a.ProjectID(),
		TeamID:     a.TeamID(),
		Details:    a.Details(),
		CreatedAt:  a.CreatedAt(),
	}
}

func ToActivityDTOs(list []*activity.Activity) []*ActivityDTO {
	out := make([]*ActivityDTO, 0, len(list))
	for _, a := range list {
		out = append(out, ToActivityDTO(a))
	}
	return out
}
