package migration

import (
	"context"
	"errors"

	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CurrentSchemaVersion represents the current schema version of the local store
const CurrentSchemaVersion = "1.1.0"

// step upgrades the schema to version inside one database transaction
type step struct {
	version string
	details string
	apply   func(m *MigrationManager, tx *gorm.DB) error
}

// steps are applied in order; each runs once
var steps = []step{
	{
		version: "1.0.0",
		details: "Cards, transactions, settings, account and UI preference tables",
		apply: func(m *MigrationManager, tx *gorm.DB) error {
			if err := tx.AutoMigrate(
				&model.Card{},
				&model.Transaction{},
				&model.Settings{},
				&model.Account{},
				&model.UIPreferences{},
			); err != nil {
				return err
			}
			return seedDefaultRows(tx)
		},
	},
	{
		version: "1.1.0",
		details: "Transaction ordering indexes",
		apply: func(m *MigrationManager, tx *gorm.DB) error {
			return m.indexMgr.CreateIndexes(tx)
		},
	},
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	indexMgr     *IndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		indexMgr:     NewIndexManager(db, logger),
	}
}

// MigrateAll applies every pending step
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.WithContext(ctx).AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		m.logger.Error("Failed to read applied schema versions", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	pending := 0
	for _, s := range steps {
		if applied[s.version] {
			continue
		}
		pending++

		m.logger.Info("Applying migration", map[string]any{
			"version": s.version,
			"details": s.details,
		})

		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.apply(m, tx); err != nil {
				return err
			}
			return m.setVersion(tx, s.version, s.details)
		})
		if err != nil {
			m.logger.Error("Migration failed", map[string]any{
				"version": s.version,
				"error":   err.Error(),
			})
			return err
		}
	}

	if pending == 0 {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": CurrentSchemaVersion,
		})
		return nil
	}

	m.indexMgr.ApplyDialectTweaks()

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
		"applied": pending,
	})
	return nil
}

// GetCurrentVersion returns the latest applied version, "" for a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc, id desc").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return version.Version, nil
}

func (m *MigrationManager) appliedVersions(ctx context.Context) (map[string]bool, error) {
	var versions []model.MigrationVersion
	if err := m.db.WithContext(ctx).Find(&versions).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v.Version] = true
	}
	return applied, nil
}

func (m *MigrationManager) setVersion(tx *gorm.DB, version string, details string) error {
	return tx.Create(&model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}).Error
}
