package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestGooseStrategy_UpStatusDown(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	s, err := NewGooseStrategy("sqlite", logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Migrate(ctx, db))
	for _, table := range []string{constants.TableUsers, constants.TableTickets, constants.TableTicketSeqs, constants.TableNotifications} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	version, err := s.Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	status, err := s.Status(ctx, db)
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.True(t, status[0].Applied)

	// running again is a no-op
	require.NoError(t, s.Migrate(ctx, db))

	require.NoError(t, s.MigrateDown(ctx, db, 5))
	assert.False(t, db.Migrator().HasTable(constants.TableUsers))

	version, err = s.Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
}

func TestScripts_AllDrivers(t *testing.T) {
	for _, driver := range []string{"", "mysql", "postgres", "sqlite"} {
		_, _, err := Scripts(driver)
		assert.NoError(t, err, driver)
	}
	_, _, err := Scripts("oracle")
	assert.Error(t, err)
}

func TestManager_PicksStrategy(t *testing.T) {
	m, err := NewManager(constants.EnvDevelopment, "mysql", logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.Strategy().Name())

	m, err = NewManager(constants.EnvProduction, "sqlite", logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.Strategy().Name())

	m, err = NewManager(constants.EnvProduction, "postgres", logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "goose", m.Strategy().Name())

	_, err = NewManager(constants.EnvProduction, "oracle", logger.NewNop())
	assert.Error(t, err)
}

func TestManager_AutoMigrate(t *testing.T) {
	db := openSQLite(t)
	m := NewManagerWithStrategy(NewAutoMigrateStrategy(logger.NewNop()), logger.NewNop())

	require.NoError(t, m.Migrate(context.Background(), db))
	assert.True(t, db.Migrator().HasTable(constants.TableProjectMembers))
}
