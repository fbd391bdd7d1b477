package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/mappers"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/db"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type TeamRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TeamMapper
}

func NewTeamRepository(db *gorm.DB) *TeamRepositoryImpl {
	return &TeamRepositoryImpl{
		db:     db,
		mapper: mappers.NewTeamMapper(),
	}
}

func (r *TeamRepositoryImpl) Create(ctx context.Context, t *team.Team) error {
	model := r.mapper.ToModel(t)
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}
		if err := t.SetID(model.ID); err != nil {
			return err
		}
		return r.writeMembers(tx, t)
	})
}

func (r *TeamRepositoryImpl) Update(ctx context.Context, t *team.Team) error {
	model := r.mapper.ToModel(t)
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return fmt.Errorf("failed to update team: %w", err)
		}
		if err := tx.Where("team_id = ?", t.ID()).Delete(&models.TeamMemberModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear team members: %w", err)
		}
		return r.writeMembers(tx, t)
	})
}

func (r *TeamRepositoryImpl) writeMembers(tx *gorm.DB, t *team.Team) error {
	rows := r.mapper.MemberModels(t)
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to save team members: %w", err)
	}
	return nil
}

func (r *TeamRepositoryImpl) GetByID(ctx context.Context, id uint) (*team.Team, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	var model models.TeamModel
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	members, err := r.loadMembers(tx, []uint{id})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToDomain(&model, members[id])
}

func (r *TeamRepositoryImpl) ListForMember(ctx context.Context, userID uint, page query.PageFilter) ([]*team.Team, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	memberOf := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.TeamMemberModel{}).
		Select("team_id").
		Where("user_id = ?", userID)
	q := tx.Model(&models.TeamModel{}).Where("id IN (?)", memberOf)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count teams: %w", err)
	}
	var rows []models.TeamModel
	if err := q.Order("id DESC").Scopes(pageScope(page)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list teams: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	members, err := r.loadMembers(tx, ids)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*team.Team, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i], members[rows[i].ID])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, nil
}

func (r *TeamRepositoryImpl) ShareMembership(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Table(constants.TableTeamMembers+" a").
		Joins(fmt.Sprintf("JOIN %s b ON a.team_id = b.team_id", constants.TableTeamMembers)).
		Where("a.user_id = ? AND b.user_id = ?", userA, userB).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check shared team membership: %w", err)
	}
	return count > 0, nil
}

func (r *TeamRepositoryImpl) loadMembers(tx *gorm.DB, teamIDs []uint) (map[uint][]models.TeamMemberModel, error) {
	out := make(map[uint][]models.TeamMemberModel, len(teamIDs))
	if len(teamIDs) == 0 {
		return out, nil
	}
	var rows []models.TeamMemberModel
	err := tx.Session(&gorm.Session{NewDB: true}).
		Where("team_id IN ?", teamIDs).
		Order("team_id ASC").Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	for _, m := range rows {
		out[m.TeamID] = append(out[m.TeamID], m)
	}
	return out, nil
}
