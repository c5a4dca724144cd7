package persistence

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
)

// PreferencesRepository persists the UI-transient partition
type PreferencesRepository interface {
	Load(ctx context.Context) (entity.UIPreferences, error)
	Save(ctx context.Context, prefs entity.UIPreferences) error
	Clear(ctx context.Context) error
}
