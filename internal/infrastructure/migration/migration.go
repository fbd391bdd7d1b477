package migration

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

// Manager runs one strategy and logs around it.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks AutoMigrate for development and sqlite, goose otherwise.
func NewManager(environment, driver string, log logger.Interface) (*Manager, error) {
	var strategy Strategy
	if strings.EqualFold(environment, constants.EnvDevelopment) || driver == "sqlite" {
		strategy = NewAutoMigrateStrategy(log)
	} else {
		g, err := NewGooseStrategy(driver, log)
		if err != nil {
			return nil, err
		}
		strategy = g
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func (m *Manager) Migrate(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.Name())

	if err := m.strategy.Migrate(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.Name(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.Name(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.Name())
	return nil
}

func (m *Manager) Strategy() Strategy {
	return m.strategy
}
