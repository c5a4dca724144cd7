package migration

import (
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager creates the secondary indexes of the local store
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

type indexDefinition struct {
	name string
	sql  string
}

// Portable between SQLite and PostgreSQL
var indexDefinitions = []indexDefinition{
	{
		name: "idx_transactions_card_date",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_card_date ON transactions (card_id, date DESC)`,
	},
	{
		name: "idx_transactions_date_created",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_date_created ON transactions (date DESC, created_at DESC)`,
	},
}

// CreateIndexes creates every index that does not exist yet
func (m *IndexManager) CreateIndexes(tx *gorm.DB) error {
	for _, index := range indexDefinitions {
		if err := tx.Exec(index.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": index.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Indexes created", map[string]any{
		"count": len(indexDefinitions),
	})
	return nil
}

// ApplyDialectTweaks refreshes planner statistics; failures are not fatal
func (m *IndexManager) ApplyDialectTweaks() {
	var statements []string
	switch m.db.Dialector.Name() {
	case "postgres":
		statements = []string{"ANALYZE cards", "ANALYZE transactions"}
	case "sqlite":
		statements = []string{"PRAGMA optimize"}
	}

	for _, stmt := range statements {
		if err := m.db.Exec(stmt).Error; err != nil {
			m.logger.Warn("Failed to apply dialect tweak", map[string]any{
				"statement": stmt,
				"error":     err.Error(),
			})
		}
	}
}
