package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/mappers"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	"github.com/trackr-io/trackr/internal/shared/db"
	apperrors "github.com/trackr-io/trackr/internal/shared/errors"
)

type TicketRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepositoryImpl {
	return &TicketRepositoryImpl{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return fmt.Errorf("failed to map ticket: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("ticket number already issued", t.Number())
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *TicketRepositoryImpl) Update(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return fmt.Errorf("failed to map ticket: %w", err)
	}
	// Save writes every column so cleared pointers reach the row.
	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}

func (r *TicketRepositoryImpl) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.TicketModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	return nil
}

func (r *TicketRepositoryImpl) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepositoryImpl) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.Ticket, int64, error) {
	if filter.ProjectID == 0 && len(filter.ProjectIDs) == 0 {
		return []*ticket.Ticket{}, 0, nil
	}

	q := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})
	if filter.ProjectID != 0 {
		q = q.Where("project_id = ?", filter.ProjectID)
	} else {
		q = q.Where("project_id IN ?", filter.ProjectIDs)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.Type != "" {
		q = q.Where("ticket_type = ?", filter.Type)
	}
	if filter.Unassigned {
		q = q.Where("assignee_id IS NULL")
	} else if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ReporterID != nil {
		q = q.Where("reporter_id = ?", *filter.ReporterID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ticket_number) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var rows []models.TicketModel
	if err := q.Order("id DESC").Scopes(pageScope(filter.Page)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	out := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, nil
}

func (r *TicketRepositoryImpl) IDsByProject(ctx context.Context, projectID uint) ([]uint, error) {
	var ids []uint
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list project tickets: %w", err)
	}
	return ids, nil
}

func (r *TicketRepositoryImpl) DeleteByProject(ctx context.Context, projectID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Where("project_id = ?", projectID).Delete(&models.TicketModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete project tickets: %w", err)
	}
	return nil
}

// TicketHistoryRepositoryImpl only ever inserts and bulk-deletes.
type TicketHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketHistoryRepository(db *gorm.DB) *TicketHistoryRepositoryImpl {
	return &TicketHistoryRepositoryImpl{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketHistoryRepositoryImpl) Append(ctx context.Context, entry *ticket.HistoryEntry) error {
	model, err := r.mapper.HistoryToModel(entry)
	if err != nil {
		return fmt.Errorf("failed to map history entry: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append ticket history: %w", err)
	}
	entry.SetID(model.ID)
	return nil
}

func (r *TicketHistoryRepositoryImpl) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.HistoryEntry, error) {
	var rows []models.TicketHistoryModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Scopes(db.OldestFirst()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket history: %w", err)
	}
	out := make([]*ticket.HistoryEntry, 0, len(rows))
	for i := range rows {
		h, err := r.mapper.HistoryToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *TicketHistoryRepositoryImpl) DeleteByTicket(ctx context.Context, ticketIDs ...uint) error {
	if len(ticketIDs) == 0 {
		return nil
	}
	if err := db.GetTxFromContext(ctx, r.db).Where("ticket_id IN ?", ticketIDs).Delete(&models.TicketHistoryModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete ticket history: %w", err)
	}
	return nil
}
