package entity

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// TransactionType carries the direction of a transaction
type TransactionType string

// Transaction types
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType validates a raw transaction type
func ParseTransactionType(raw string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(raw))); t {
	case TypeIncome, TypeExpense:
		return t, nil
	default:
		return "", errs.NewValidationError("type", fmt.Sprintf("must be %q or %q, got %q", TypeIncome, TypeExpense, raw))
	}
}

// Transaction is a single dated income or expense movement against one card
type Transaction struct {
	ID          string
	CardID      string
	Amount      decimal.Decimal // always positive, direction is carried by Type
	Type        TransactionType
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// NewTransaction creates a transaction; a zero date defaults to now
func NewTransaction(
	id string,
	cardID string,
	amount decimal.Decimal,
	txType TransactionType,
	description string,
	date time.Time,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValidationError("id", "must not be empty")
	}

	now := timeProvider.Now()
	if date.IsZero() {
		date = now
	}

	tx := &Transaction{
		ID:          id,
		CardID:      cardID,
		Amount:      amount,
		Type:        txType,
		Description: strings.TrimSpace(description),
		Date:        date,
		CreatedAt:   now,
	}
	if err := tx.validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// SignedAmount returns +amount for income and -amount for expense
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsIncome() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// IsIncome returns true if this transaction increases the card balance
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// TransactionUpdate carries the fields to change on a transaction; nil fields are left untouched
type TransactionUpdate struct {
	CardID      *string
	Amount      *decimal.Decimal
	Type        *TransactionType
	Description *string
	Date        *time.Time
}

// IsEmpty reports whether the update changes nothing
func (u TransactionUpdate) IsEmpty() bool {
	return u.CardID == nil && u.Amount == nil && u.Type == nil && u.Description == nil && u.Date == nil
}

// Apply merges the update into the transaction.
// The merged result is validated as a whole before anything is assigned.
func (t *Transaction) Apply(update TransactionUpdate) error {
	next := *t
	if update.CardID != nil {
		next.CardID = *update.CardID
	}
	if update.Amount != nil {
		next.Amount = *update.Amount
	}
	if update.Type != nil {
		next.Type = *update.Type
	}
	if update.Description != nil {
		next.Description = strings.TrimSpace(*update.Description)
	}
	if update.Date != nil {
		next.Date = *update.Date
	}

	if err := next.validate(); err != nil {
		return err
	}
	*t = next
	return nil
}

func (t *Transaction) validate() error {
	if strings.TrimSpace(t.CardID) == "" {
		return errs.NewValidationError("cardId", "must not be empty")
	}
	if err := ValidatePositiveAmount(t.Amount); err != nil {
		return err
	}
	if _, err := ParseTransactionType(string(t.Type)); err != nil {
		return err
	}
	if t.Description == "" {
		return errs.NewValidationError("description", "must not be empty")
	}
	if t.Date.IsZero() {
		return errs.NewValidationError("date", "must be set")
	}
	return nil
}

// SortByDateDesc orders transactions newest first; equal dates keep the latest created first
func SortByDateDesc(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
}
