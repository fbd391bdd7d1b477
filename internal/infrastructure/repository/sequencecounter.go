package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	"github.com/trackr-io/trackr/internal/shared/biztime"
	"github.com/trackr-io/trackr/internal/shared/db"
)

// SequenceCounterImpl keeps one ticket_sequences row per scope. Called inside
// the ticket-create transaction, a rollback also rolls the counter back.
type SequenceCounterImpl struct {
	db *gorm.DB
}

func NewSequenceCounter(db *gorm.DB) *SequenceCounterImpl {
	return &SequenceCounterImpl{db: db}
}

func (c *SequenceCounterImpl) Increment(ctx context.Context, scope string) (int64, error) {
	var value int64
	err := db.GetTxFromContext(ctx, c.db).Transaction(func(tx *gorm.DB) error {
		now := biztime.NowUTC()
		seed := models.TicketSequenceModel{Scope: scope, Value: 0, UpdatedAt: now}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to seed sequence %s: %w", scope, err)
		}

		// The update takes the row lock, so concurrent creates serialize here.
		err := tx.Model(&models.TicketSequenceModel{}).
			Where("scope = ?", scope).
			Updates(map[string]any{"value": gorm.Expr("value + 1"), "updated_at": now}).Error
		if err != nil {
			return fmt.Errorf("failed to increment sequence %s: %w", scope, err)
		}

		var row models.TicketSequenceModel
		if err := tx.Where("scope = ?", scope).First(&row).Error; err != nil {
			return fmt.Errorf("failed to read sequence %s: %w", scope, err)
		}
		value = row.Value
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}
