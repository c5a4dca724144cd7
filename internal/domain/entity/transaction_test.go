package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/balance-app/mocks/port/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewFixedTimeProvider(t, fixedTime)

	t.Run("Valid income transaction", func(t *testing.T) {
		date := time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)
		tx, err := NewTransaction("tx1", "card1", decimal.NewFromInt(500), TypeIncome, " Salary ", date, mockTime)

		require.NoError(t, err)
		assert.Equal(t, "tx1", tx.ID)
		assert.Equal(t, "card1", tx.CardID)
		assert.Equal(t, "Salary", tx.Description)
		assert.Equal(t, date, tx.Date)
		assert.Equal(t, fixedTime, tx.CreatedAt)
		assert.True(t, tx.IsIncome())
		assert.True(t, decimal.NewFromInt(500).Equal(tx.SignedAmount()))
	})

	t.Run("Zero date defaults to now", func(t *testing.T) {
		tx, err := NewTransaction("tx2", "card1", decimal.NewFromInt(200), TypeExpense, "Groceries", time.Time{}, mockTime)

		require.NoError(t, err)
		assert.Equal(t, fixedTime, tx.Date)
		assert.True(t, decimal.NewFromInt(-200).Equal(tx.SignedAmount()))
	})

	t.Run("Rejects non-positive amount", func(t *testing.T) {
		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			tx, err := NewTransaction("tx", "card1", amount, TypeIncome, "x", fixedTime, mockTime)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			assert.Nil(t, tx)
		}
	})

	t.Run("Rejects unknown type", func(t *testing.T) {
		_, err := NewTransaction("tx", "card1", decimal.NewFromInt(1), TransactionType("refund"), "x", fixedTime, mockTime)
		assert.True(t, errs.IsValidationError(err))
	})

	t.Run("Rejects empty description", func(t *testing.T) {
		_, err := NewTransaction("tx", "card1", decimal.NewFromInt(1), TypeIncome, "   ", fixedTime, mockTime)
		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "description", vErr.Field)
	})

	t.Run("Rejects empty ids", func(t *testing.T) {
		_, err := NewTransaction("", "card1", decimal.NewFromInt(1), TypeIncome, "x", fixedTime, mockTime)
		assert.True(t, errs.IsValidationError(err))

		_, err = NewTransaction("tx", "", decimal.NewFromInt(1), TypeIncome, "x", fixedTime, mockTime)
		assert.True(t, errs.IsValidationError(err))
	})
}

func TestParseTransactionType(t *testing.T) {
	txType, err := ParseTransactionType("Income")
	require.NoError(t, err)
	assert.Equal(t, TypeIncome, txType)

	txType, err = ParseTransactionType("expense")
	require.NoError(t, err)
	assert.Equal(t, TypeExpense, txType)

	_, err = ParseTransactionType("win")
	assert.True(t, errs.IsValidationError(err))
}

func TestTransactionApply(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewFixedTimeProvider(t, fixedTime)

	newTx := func(t *testing.T) *Transaction {
		tx, err := NewTransaction("tx1", "card1", decimal.NewFromInt(100), TypeIncome, "Salary", fixedTime, mockTime)
		require.NoError(t, err)
		return tx
	}

	t.Run("Merges every field", func(t *testing.T) {
		tx := newTx(t)
		cardID := "card2"
		amount := decimal.NewFromInt(75)
		txType := TypeExpense
		desc := "Rent"
		date := fixedTime.Add(-24 * time.Hour)

		err := tx.Apply(TransactionUpdate{CardID: &cardID, Amount: &amount, Type: &txType, Description: &desc, Date: &date})

		require.NoError(t, err)
		assert.Equal(t, "card2", tx.CardID)
		assert.True(t, amount.Equal(tx.Amount))
		assert.Equal(t, TypeExpense, tx.Type)
		assert.Equal(t, "Rent", tx.Description)
		assert.Equal(t, date, tx.Date)
	})

	t.Run("Invalid update leaves the transaction unchanged", func(t *testing.T) {
		tx := newTx(t)
		before := *tx
		desc := "Changed"
		negative := decimal.NewFromInt(-1)

		err := tx.Apply(TransactionUpdate{Description: &desc, Amount: &negative})

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Equal(t, before, *tx)
	})

	t.Run("Empty update", func(t *testing.T) {
		assert.True(t, TransactionUpdate{}.IsEmpty())
	})
}

func TestSortByDateDesc(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txs := []Transaction{
		{ID: "old", Date: base, CreatedAt: base},
		{ID: "new", Date: base.Add(48 * time.Hour), CreatedAt: base},
		{ID: "mid-first", Date: base.Add(24 * time.Hour), CreatedAt: base},
		{ID: "mid-second", Date: base.Add(24 * time.Hour), CreatedAt: base.Add(time.Minute)},
	}

	SortByDateDesc(txs)

	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	assert.Equal(t, []string{"new", "mid-second", "mid-first", "old"}, ids)
}
