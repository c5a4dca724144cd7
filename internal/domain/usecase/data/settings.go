package data

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
)

// UpdateSettings overlays update on the current settings and persists them.
// Settings changes never trigger an auto-sync.
func (s *Store) UpdateSettings(ctx context.Context, update entity.SettingsUpdate) error {
	var merged entity.Settings

	err := s.apply(ctx, "update_settings", func(next *entity.DataState) error {
		settings, err := next.Settings.Merge(update)
		if err != nil {
			return err
		}
		next.Settings = settings
		merged = settings
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Settings updated", map[string]any{
		"currency":      merged.Currency,
		"auto_sync":     merged.AutoSync,
		"sync_interval": merged.SyncInterval,
	})
	s.notifySettings(merged)
	return nil
}
