package entity

import (
	"strings"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
)

// Default settings values
const (
	DefaultCurrency     = "RUB"
	DefaultDateFormat   = "DD.MM.YYYY"
	DefaultSyncInterval = 30 // minutes
)

// Settings are global to the account, not per card
type Settings struct {
	Currency     string
	DateFormat   string
	AutoSync     bool
	SyncInterval int // minutes
}

// DefaultSettings returns the settings of a fresh data set
func DefaultSettings() Settings {
	return Settings{
		Currency:     DefaultCurrency,
		DateFormat:   DefaultDateFormat,
		AutoSync:     false,
		SyncInterval: DefaultSyncInterval,
	}
}

// Validate checks the settings values
func (s Settings) Validate() error {
	if len(s.Currency) != 3 || strings.ToUpper(s.Currency) != s.Currency {
		return errs.NewValidationError("currency", "must be a three letter upper-case code")
	}
	if strings.TrimSpace(s.DateFormat) == "" {
		return errs.NewValidationError("dateFormat", "must not be empty")
	}
	if s.SyncInterval < 1 {
		return errs.NewValidationError("syncInterval", "must be at least one minute")
	}
	return nil
}

// SettingsUpdate is a shallow overlay; nil fields keep the current value
type SettingsUpdate struct {
	Currency     *string
	DateFormat   *string
	AutoSync     *bool
	SyncInterval *int
}

// Merge overlays the update on a copy of the settings and validates the result
func (s Settings) Merge(update SettingsUpdate) (Settings, error) {
	next := s
	if update.Currency != nil {
		next.Currency = strings.ToUpper(strings.TrimSpace(*update.Currency))
	}
	if update.DateFormat != nil {
		next.DateFormat = *update.DateFormat
	}
	if update.AutoSync != nil {
		next.AutoSync = *update.AutoSync
	}
	if update.SyncInterval != nil {
		next.SyncInterval = *update.SyncInterval
	}

	if err := next.Validate(); err != nil {
		return s, err
	}
	return next, nil
}

// AsUpdate returns an overlay that sets every field
func (s Settings) AsUpdate() SettingsUpdate {
	return SettingsUpdate{
		Currency:     &s.Currency,
		DateFormat:   &s.DateFormat,
		AutoSync:     &s.AutoSync,
		SyncInterval: &s.SyncInterval,
	}
}
