package model

import "time"

// SingletonID is the primary key of single-row tables
const SingletonID uint = 1

// Settings is the single-row table of data-set settings
type Settings struct {
	ID           uint   `gorm:"primaryKey;autoIncrement:false"`
	Currency     string `gorm:"not null;size:3"`
	DateFormat   string `gorm:"not null;size:32"`
	AutoSync     bool   `gorm:"not null;default:false"`
	SyncInterval int    `gorm:"not null"`
	LastSyncTime *time.Time
}

// TableName specifies the table name for Settings
func (Settings) TableName() string {
	return "settings"
}
