package dto

import (
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
)

// SettingsResponse represents the global settings
type SettingsResponse struct {
	Currency     string `json:"currency"`
	DateFormat   string `json:"dateFormat"`
	AutoSync     bool   `json:"autoSync"`
	SyncInterval int    `json:"syncInterval"`
}

// SettingsUpdateRequest is a partial settings update
type SettingsUpdateRequest struct {
	Currency     *string `json:"currency"`
	DateFormat   *string `json:"dateFormat"`
	AutoSync     *bool   `json:"autoSync"`
	SyncInterval *int    `json:"syncInterval"`
}

// SyncStatusResponse is the observable sync state
type SyncStatusResponse struct {
	Status       string     `json:"status"`
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`
	IsLoading    bool       `json:"isLoading"`
	Error        string     `json:"error,omitempty"`
}

// PreferencesRequest sets the UI preferences
type PreferencesRequest struct {
	SidebarOpen *bool `json:"sidebarOpen" binding:"required"`
}

// PreferencesResponse represents the UI preferences
type PreferencesResponse struct {
	SidebarOpen bool `json:"sidebarOpen"`
}

// ToSettingsResponse maps settings
func ToSettingsResponse(s entity.Settings) SettingsResponse {
	return SettingsResponse{
		Currency:     s.Currency,
		DateFormat:   s.DateFormat,
		AutoSync:     s.AutoSync,
		SyncInterval: s.SyncInterval,
	}
}

// ToUpdate converts the request into a settings overlay
func (r SettingsUpdateRequest) ToUpdate() entity.SettingsUpdate {
	return entity.SettingsUpdate{
		Currency:     r.Currency,
		DateFormat:   r.DateFormat,
		AutoSync:     r.AutoSync,
		SyncInterval: r.SyncInterval,
	}
}

// ToSyncStatusResponse maps the status view
func ToSyncStatusResponse(v usecase.StatusView) SyncStatusResponse {
	return SyncStatusResponse{
		Status:       string(v.SyncStatus),
		LastSyncTime: v.LastSyncTime,
		IsLoading:    v.IsLoading,
		Error:        v.Error,
	}
}
