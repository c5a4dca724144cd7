package migration

import (
	"errors"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// seedDefaultRows inserts the settings and UI preference rows of a fresh install
func seedDefaultRows(tx *gorm.DB) error {
	defaults := entity.DefaultSettings()
	settings := model.Settings{
		ID:           model.SingletonID,
		Currency:     defaults.Currency,
		DateFormat:   defaults.DateFormat,
		AutoSync:     defaults.AutoSync,
		SyncInterval: defaults.SyncInterval,
	}
	if err := createIfMissing(tx, &model.Settings{}, &settings); err != nil {
		return err
	}

	prefs := model.UIPreferences{
		ID:          model.SingletonID,
		SidebarOpen: entity.DefaultUIPreferences().SidebarOpen,
	}
	return createIfMissing(tx, &model.UIPreferences{}, &prefs)
}

func createIfMissing(tx *gorm.DB, probe any, row any) error {
	err := tx.Where("id = ?", model.SingletonID).Take(probe).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return tx.Create(row).Error
	default:
		return err
	}
}
