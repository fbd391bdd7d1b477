package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/mappers"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	"github.com/trackr-io/trackr/internal/shared/db"
)

type ActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ActivityMapper
}

func NewActivityRepository(db *gorm.DB) *ActivityRepositoryImpl {
	return &ActivityRepositoryImpl{
		db:     db,
		mapper: mappers.NewActivityMapper(),
	}
}

func (r *ActivityRepositoryImpl) Create(ctx context.Context, a *activity.Activity) error {
	model, err := r.mapper.ToModel(a)
	if err != nil {
		return fmt.Errorf("failed to map activity: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	a.SetID(model.ID)
	return nil
}

func (r *ActivityRepositoryImpl) List(ctx context.Context, filter activity.Filter) ([]*activity.Activity, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.ActivityModel{})
	if filter.ActorID != 0 {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.ProjectID != 0 {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.TeamID != 0 {
		q = q.Where("team_id = ?", filter.TeamID)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", string(filter.EntityType))
	}
	if filter.EntityID != 0 {
		q = q.Where("entity_id = ?", filter.EntityID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity: %w", err)
	}
	var rows []models.ActivityModel
	if err := q.Scopes(db.NewestFirst(), pageScope(filter.Page)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list activity: %w", err)
	}

	out := make([]*activity.Activity, 0, len(rows))
	for i := range rows {
		a, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, nil
}
