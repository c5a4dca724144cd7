package entity

import "time"

// SnapshotVersion is written into every pushed snapshot
const SnapshotVersion = "1.0.0"

// Snapshot is the full state exchanged with the remote backup store.
// Settings is an overlay so a pulled snapshot only overrides the fields it carries.
type Snapshot struct {
	Cards        []Card
	Transactions []Transaction
	Settings     SettingsUpdate
	Version      string
	LastSyncTime time.Time
}

// DataState is the card, transaction and settings partition of local storage
type DataState struct {
	Cards        []Card
	Transactions []Transaction
	Settings     Settings
	LastSyncTime *time.Time
}

// NewDataState returns an empty data set with default settings
func NewDataState() *DataState {
	return &DataState{
		Cards:        []Card{},
		Transactions: []Transaction{},
		Settings:     DefaultSettings(),
	}
}

// UIPreferences is the UI-transient partition of local storage
type UIPreferences struct {
	SidebarOpen bool
}

// DefaultUIPreferences returns the preferences of a fresh install
func DefaultUIPreferences() UIPreferences {
	return UIPreferences{SidebarOpen: false}
}
