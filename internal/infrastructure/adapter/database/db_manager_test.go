package database

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ConnectAndMigrate(t *testing.T) {
	tm := NewTestDBManager(t, logger.NewNoopLogger())
	ctx := context.Background()

	require.NoError(t, tm.Manager.Ping(ctx))

	version, err := tm.Manager.MigrationManager().GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, migration.CurrentSchemaVersion, version)

	// a second run is a no-op
	require.NoError(t, tm.Manager.Migrate(ctx))
	version, err = tm.Manager.MigrationManager().GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, migration.CurrentSchemaVersion, version)
}

func TestManager_InvalidConfig(t *testing.T) {
	c := DefaultConfig()
	c.Driver = "oracle"
	m := NewManager(c, logger.NewNoopLogger(), timeprovider.NewRealTimeProvider())

	_, err := m.Connect()
	assert.Error(t, err)
	assert.Error(t, m.Ping(context.Background()))
	assert.Error(t, m.Migrate(context.Background()))
	assert.NoError(t, m.Close())
}

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	assert.Nil(t, mapper.MapError(nil, PartitionData, "saving"))

	err := mapper.MapError(errors.New("UNIQUE constraint failed: cards.id"), PartitionData, "saving")
	assert.ErrorIs(t, err, errs.ErrPersistence)
	assert.Contains(t, err.Error(), "saving data: duplicate record")

	err = mapper.MapError(context.DeadlineExceeded, PartitionAccount, "loading")
	assert.Contains(t, err.Error(), "loading account: timed out")

	assert.ErrorIs(t, mapper.MapError(context.Canceled, PartitionData, "saving"), context.Canceled)
}

func TestRetryOnTransientError(t *testing.T) {
	conf := RetryConfig{MaxRetries: 3, RetryInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
	log := logger.NewNoopLogger()

	t.Run("retries locked store", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), conf, func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked")
			}
			return nil
		}, log)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent error returns at once", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), conf, func() error {
			calls++
			return errors.New("UNIQUE constraint failed")
		}, log)
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), conf, func() error {
			calls++
			return errors.New("database is locked")
		}, log)
		require.Error(t, err)
		assert.Equal(t, conf.MaxRetries, calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := RetryOnTransientError(ctx, conf, func() error {
			return errors.New("database is locked")
		}, log)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	conf := RetryConfig{RetryInterval: 10 * time.Millisecond, MaxInterval: 50 * time.Millisecond, JitterFactor: 0.2}

	first := calculateBackoffWithJitter(0, conf)
	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.LessOrEqual(t, first, 12*time.Millisecond)

	capped := calculateBackoffWithJitter(10, conf)
	assert.LessOrEqual(t, capped, 60*time.Millisecond)
}

func TestExtractHelpers(t *testing.T) {
	assert.Equal(t, "SELECT", extractQueryType(" select * from cards"))
	assert.Equal(t, "", extractQueryType("PRAGMA optimize"))
	assert.Equal(t, "CARDS", extractTableName("SELECT * FROM `cards` WHERE id = 1"))
	assert.Equal(t, "TRANSACTIONS", extractTableName(`INSERT INTO "transactions" (id) VALUES (1)`))
	assert.Equal(t, "SETTINGS", extractTableName("UPDATE settings SET currency = 'EUR'"))
}
