package model

import "time"

// Account is the single-row session table.
// The backup token is kept next to the identity it belongs to.
type Account struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement:false"`
	AccountID          string `gorm:"not null;size:255"`
	Username           string `gorm:"not null;size:255"`
	Name               string `gorm:"size:255"`
	Email              string `gorm:"size:255"`
	Picture            string `gorm:"type:text"`
	Provider           string `gorm:"not null;size:16"`
	ExternalID         string `gorm:"size:255"`
	BackupToken        string `gorm:"type:text"`
	BackupDocumentID   string `gorm:"size:255"`
	BackupAutoSync     bool   `gorm:"not null;default:false"`
	BackupLastSyncTime *time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// UIPreferences is the single-row table of UI state
type UIPreferences struct {
	ID          uint `gorm:"primaryKey;autoIncrement:false"`
	SidebarOpen bool `gorm:"not null;default:false"`
}

// TableName specifies the table name for UIPreferences
func (UIPreferences) TableName() string {
	return "ui_preferences"
}
