// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"club-leaderboard-api/config"
	"club-leaderboard-api/migrations"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// Logger returns a logger that writes through t.Log.
func Logger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel))
}

// OpenDB opens a migrated sqlite database in a temp dir, closed at cleanup.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger := Logger(t)
	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabasePath:   filepath.Join(t.TempDir(), "club.db"),
	}

	db, err := config.ConnectDatabase(cfg, logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, migrations.InitializeDatabase(db, logger.Sugar(), false))
	return db
}
