package repository

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// PreferencesRepository stores UI preferences in a single-row table
type PreferencesRepository struct {
	storeBase
}

// NewPreferencesRepository creates a new PreferencesRepository instance
func NewPreferencesRepository(manager *database.Manager, logger coreport.Logger) *PreferencesRepository {
	return &PreferencesRepository{storeBase: newStoreBase(manager, logger, database.PartitionPreferences)}
}

// Load returns the stored preferences, defaults when none
func (r *PreferencesRepository) Load(ctx context.Context) (entity.UIPreferences, error) {
	ctx, cancel := r.manager.WithTimeout(ctx)
	defer cancel()

	var row model.UIPreferences
	err := r.manager.DB().WithContext(ctx).Where("id = ?", model.SingletonID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultUIPreferences(), nil
	}
	if err != nil {
		return entity.DefaultUIPreferences(), r.handleDatabaseError("loading", err)
	}
	return entity.UIPreferences{SidebarOpen: row.SidebarOpen}, nil
}

// Save stores prefs
func (r *PreferencesRepository) Save(ctx context.Context, prefs entity.UIPreferences) error {
	ctx, cancel := r.manager.WithTimeout(ctx)
	defer cancel()

	row := model.UIPreferences{ID: model.SingletonID, SidebarOpen: prefs.SidebarOpen}
	if err := r.manager.DB().WithContext(ctx).Save(&row).Error; err != nil {
		return r.handleDatabaseError("saving", err)
	}
	return nil
}

// Clear removes the stored preferences
func (r *PreferencesRepository) Clear(ctx context.Context) error {
	ctx, cancel := r.manager.WithTimeout(ctx)
	defer cancel()

	if err := r.manager.DB().WithContext(ctx).Where("id = ?", model.SingletonID).Delete(&model.UIPreferences{}).Error; err != nil {
		return r.handleDatabaseError("clearing", err)
	}
	return nil
}
