package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for transactions
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:64"`
	Position    int             `gorm:"not null;index"` // insertion order
	CardID      string          `gorm:"not null;size:64;index"`
	Amount      decimal.Decimal `gorm:"type:varchar(64);not null"`
	Type        string          `gorm:"not null;size:16"`
	Description string          `gorm:"type:text;not null"`
	Date        time.Time       `gorm:"not null;index"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
