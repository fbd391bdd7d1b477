package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/mappers"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/db"
	apperrors "github.com/trackr-io/trackr/internal/shared/errors"
)

// ProjectRepositoryImpl stores the roster in project_members and rewrites
// it on every update.
type ProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProjectMapper
}

func NewProjectRepository(db *gorm.DB) *ProjectRepositoryImpl {
	return &ProjectRepositoryImpl{
		db:     db,
		mapper: mappers.NewProjectMapper(),
	}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, p *project.Project) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to map project: %w", err)
	}
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			if apperrors.IsDuplicateError(err) {
				return apperrors.NewConflictError("project key already exists", p.Key())
			}
			return fmt.Errorf("failed to create project: %w", err)
		}
		if err := p.SetID(model.ID); err != nil {
			return err
		}
		return r.writeMembers(tx, p)
	})
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, p *project.Project) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to map project: %w", err)
	}
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		if err := tx.Where("project_id = ?", p.ID()).Delete(&models.ProjectMemberModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear project members: %w", err)
		}
		return r.writeMembers(tx, p)
	})
}

func (r *ProjectRepositoryImpl) writeMembers(tx *gorm.DB, p *project.Project) error {
	rows := r.mapper.MemberModels(p)
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save project members: %w", err)
	}
	return nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMemberModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete project members: %w", err)
		}
		if err := tx.Delete(&models.ProjectModel{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var model models.ProjectModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	members, err := r.loadMembers(tx, []uint{id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(&model, members[id])
}

func (r *ProjectRepositoryImpl) KeyExists(ctx context.Context, key string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ProjectModel{}).Where("project_key = ?", key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check project key: %w", err)
	}
	return count > 0, nil
}

func (r *ProjectRepositoryImpl) List(ctx context.Context, filter project.ListFilter) ([]*project.Project, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.ProjectModel{}).Scopes(visibilityScope(tx, filter.Visibility))
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var rows []models.ProjectModel
	if err := q.Order("id DESC").Scopes(pageScope(filter.Page)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	members, err := r.loadMembers(tx, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*project.Project, 0, len(rows))
	for i := range rows {
		p, err := r.mapper.ToDomain(&rows[i], members[rows[i].ID])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, nil
}

func (r *ProjectRepositoryImpl) VisibleIDs(ctx context.Context, v project.VisibilityQuery) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var ids []uint
	err := tx.Model(&models.ProjectModel{}).
		Scopes(visibilityScope(tx, v)).
		Order("id DESC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list visible projects: %w", err)
	}
	return ids, nil
}

func (r *ProjectRepositoryImpl) ShareMembership(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Table(constants.TableProjectMembers+" a").
		Joins(fmt.Sprintf("JOIN %s b ON a.project_id = b.project_id", constants.TableProjectMembers)).
		Where("a.user_id = ? AND b.user_id = ?", userA, userB).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check shared project membership: %w", err)
	}
	return count > 0, nil
}

// loadMembers returns member rows grouped by project, in roster order.
func (r *ProjectRepositoryImpl) loadMembers(tx *gorm.DB, projectIDs []uint) (map[uint][]models.ProjectMemberModel, error) {
	out := make(map[uint][]models.ProjectMemberModel, len(projectIDs))
	if len(projectIDs) == 0 {
		return out, nil
	}
	var rows []models.ProjectMemberModel
	err := tx.Session(&gorm.Session{NewDB: true}).
		Where("project_id IN ?", projectIDs).
		Order("project_id ASC").Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load project members: %w", err)
	}
	for _, m := range rows {
		out[m.ProjectID] = append(out[m.ProjectID], m)
	}
	return out, nil
}

func visibilityScope(tx *gorm.DB, v project.VisibilityQuery) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if v.All {
			return q
		}
		memberOf := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.ProjectMemberModel{}).
			Select("project_id").
			Where("user_id = ?", v.UserID)
		if v.IncludeOwned {
			return q.Where("id IN (?) OR owner_id = ?", memberOf, v.UserID)
		}
		return q.Where("id IN (?)", memberOf)
	}
}
