package database

import (
	"context"
	"strings"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	timeprovider "github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/time"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestDBManager provides a private in-memory SQLite store per test
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager creates a connected and migrated in-memory store, closed on cleanup
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	timeProvider := timeprovider.NewRealTimeProvider()

	// cache=shared keeps the schema alive across pooled connections
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + uuid.NewString()
	config := DefaultConfig()
	config.Path = "file:" + name + "?mode=memory&cache=shared"
	config.LogLevel = "silent"
	config.RetryAttempts = 1
	config.RetryDelay = 10 * time.Millisecond

	manager := NewManager(config, logger, timeProvider)
	if _, err := manager.Connect(); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := manager.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// DB returns the underlying connection
func (m *TestDBManager) DB() *gorm.DB {
	return m.Manager.DB()
}

// Count returns the row count of a model's table
func (m *TestDBManager) Count(t *testing.T, model any) int64 {
	t.Helper()

	var count int64
	if err := m.Manager.DB().Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}

// DropTable removes a table to simulate a broken store
func (m *TestDBManager) DropTable(t *testing.T, model any) {
	t.Helper()

	if err := m.Manager.DB().Migrator().DropTable(model); err != nil {
		t.Fatalf("Failed to drop table: %v", err)
	}
}
