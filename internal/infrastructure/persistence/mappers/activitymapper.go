package mappers

import (
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
)

type ActivityMapper interface {
	ToModel(a *activity.Activity) (*models.ActivityModel, error)
	ToDomain(m *models.ActivityModel) (*activity.Activity, error)
}

type ActivityMapperImpl struct{}

func NewActivityMapper() ActivityMapper {
	return &ActivityMapperImpl{}
}

func (ActivityMapperImpl) ToModel(a *activity.Activity) (*models.ActivityModel, error) {
	details, err := toJSON(a.Details())
	if err != nil {
		return nil, err
	}
	return &models.ActivityModel{
		ID:         a.ID(),
		ActorID:    a.ActorID(),
		Action:     string(a.Action()),
		EntityType: string(a.EntityType()),
		EntityID:   a.EntityID(),
		ProjectID:  a.ProjectID(),
		TeamID:     a.TeamID(),
		Details:    details,
		CreatedAt:  a.CreatedAt(),
	}, nil
}

func (ActivityMapperImpl) ToDomain(m *models.ActivityModel) (*activity.Activity, error) {
	details := activity.Details{}
	if err := fromJSON(m.Details, &details, "details"); err != nil {
		return nil, err
	}
	return activity.ReconstructActivity(m.ID, activity.Entry{
		ActorID:    m.ActorID,
		Action:     activity.Action(m.Action),
		EntityType: activity.EntityType(m.EntityType),
		EntityID:   m.EntityID,
		ProjectID:  m.ProjectID,
		TeamID:     m.TeamID,
		Details:    details,
	}, m.CreatedAt), nil
}
