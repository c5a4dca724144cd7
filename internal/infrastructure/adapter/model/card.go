package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card represents the database model for cards.
// Amounts are stored as text so no driver rounds them through a float.
type Card struct {
	ID        string          `gorm:"primaryKey;size:64"`
	Position  int             `gorm:"not null;index"` // insertion order
	Name      string          `gorm:"not null;size:100"`
	Balance   decimal.Decimal `gorm:"type:varchar(64);not null"`
	Color     string          `gorm:"not null;size:32"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}
