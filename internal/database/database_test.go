package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"fachnmchi/internal/config"
	"fachnmchi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "file:x?mode=memory", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "feed.db?_journal_mode=WAL&_busy_timeout=5000", sqliteDSN("feed.db"))
}

func TestDialector(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: config.DriverMemory})
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, err = Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)

	d, err := Dialector(&config.Config{DBDriver: config.DriverPostgres, DBHost: "h"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(&config.Config{DBDriver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
}

func TestConnect_SQLiteMigrates(t *testing.T) {
	cfg := &config.Config{
		Env:        "test",
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&models.Post{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestCustomGormLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("broken"))
	assert.Contains(t, buf.String(), "GORM query error")

	buf.Reset()
	l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	silent := l.LogMode(logger.Silent)
	silent.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("x"))
	assert.Empty(t, buf.String())
}

func TestSchemaStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.db")
	db, err := gorm.Open(sqlite.Open(sqliteDSN(path)), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	status, err := SchemaStatus(db)
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.Equal(t, "posts", status[0].Table)
	assert.False(t, status[0].Exists)
	assert.Contains(t, status[0].MissingColumns, "question")
	assert.True(t, Pending(status))

	require.NoError(t, Migrate(db))

	status, err = SchemaStatus(db)
	require.NoError(t, err)
	assert.True(t, status[0].Exists)
	assert.Empty(t, status[0].MissingColumns)
	assert.False(t, Pending(status))
}
