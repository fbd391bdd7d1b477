// Package migration applies the database schema either from versioned goose
// scripts or from gorm AutoMigrate.
package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

// Strategy brings the schema up to date.
type Strategy interface {
	Migrate(ctx context.Context, db *gorm.DB) error
	Name() string
}

// MigrationStatus is one script and whether it has been applied.
type MigrationStatus struct {
	Version int64
	Source  string
	Applied bool
}

// GooseStrategy runs the embedded SQL scripts for one driver.
type GooseStrategy struct {
	fsys    fs.FS
	dialect goose.Dialect
	logger  logger.Interface
}

func NewGooseStrategy(driver string, log logger.Interface) (*GooseStrategy, error) {
	fsys, dialect, err := Scripts(driver)
	if err != nil {
		return nil, err
	}
	return &GooseStrategy{
		fsys:    fsys,
		dialect: goose.Dialect(dialect),
		logger:  log.With("component", "migration.goose"),
	}, nil
}

func (s *GooseStrategy) Name() string {
	return "goose"
}

func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	p, err := goose.NewProvider(s.dialect, sqlDB, s.fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return p, nil
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	current, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	s.logger.Infow("current migration status", "version", current)

	results, err := p.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	final, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}
	s.logger.Infow("migration completed successfully",
		"from_version", current,
		"to_version", final,
		"applied", len(results))
	return nil
}

// MigrateDown rolls back steps migrations, stopping early at version zero.
func (s *GooseStrategy) MigrateDown(ctx context.Context, db *gorm.DB, steps int) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		if _, err := p.Down(ctx); err != nil {
			if errors.Is(err, goose.ErrNoNextVersion) {
				break
			}
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}
	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GooseStrategy) Version(ctx context.Context, db *gorm.DB) (int64, error) {
	p, err := s.provider(db)
	if err != nil {
		return 0, err
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return v, nil
}

func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) ([]MigrationStatus, error) {
	p, err := s.provider(db)
	if err != nil {
		return nil, err
	}
	results, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	out := make([]MigrationStatus, 0, len(results))
	for _, r := range results {
		out = append(out, MigrationStatus{
			Version: r.Source.Version,
			Source:  r.Source.Path,
			Applied: r.State == goose.StateApplied,
		})
	}
	return out, nil
}

// AutoMigrateStrategy derives the schema from the gorm models.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) Name() string {
	return "gorm_auto_migrate"
}

func (s *AutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	all := models.All()
	if err := db.WithContext(ctx).AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migration completed", "models", len(all))
	return nil
}
