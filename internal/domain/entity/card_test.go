package entity

import (
	"strings"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/balance-app/mocks/port/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewFixedTimeProvider(t, fixedTime)

	t.Run("Valid card", func(t *testing.T) {
		card, err := NewCard("c1", " Cash ", decimal.NewFromInt(1000), "#263d26", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "c1", card.ID)
		assert.Equal(t, "Cash", card.Name)
		assert.Equal(t, "#263d26", card.Color)
		assert.True(t, decimal.NewFromInt(1000).Equal(card.Balance))
		assert.Equal(t, fixedTime, card.CreatedAt)
		assert.Equal(t, fixedTime, card.UpdatedAt)
	})

	t.Run("Negative balance is allowed", func(t *testing.T) {
		card, err := NewCard("c2", "Credit", decimal.NewFromInt(-50), "", mockTime)

		require.NoError(t, err)
		assert.True(t, card.Balance.IsNegative())
		assert.Equal(t, DefaultCardColor, card.Color)
	})

	t.Run("Empty name", func(t *testing.T) {
		card, err := NewCard("c3", "  ", decimal.Zero, "", mockTime)

		assert.Nil(t, card)
		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
	})

	t.Run("Name too long", func(t *testing.T) {
		_, err := NewCard("c4", strings.Repeat("a", MaxCardNameLength+1), decimal.Zero, "", mockTime)
		assert.True(t, errs.IsValidationError(err))
	})
}

func TestCardApply(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	t.Run("Merges fields and bumps UpdatedAt", func(t *testing.T) {
		card, err := NewCard("c1", "Cash", decimal.NewFromInt(10), "", coremocks.NewFixedTimeProvider(t, created))
		require.NoError(t, err)

		name := "Wallet"
		balance := decimal.NewFromInt(20)
		err = card.Apply(CardUpdate{Name: &name, Balance: &balance}, coremocks.NewFixedTimeProvider(t, updated))

		require.NoError(t, err)
		assert.Equal(t, "Wallet", card.Name)
		assert.True(t, balance.Equal(card.Balance))
		assert.Equal(t, DefaultCardColor, card.Color)
		assert.Equal(t, created, card.CreatedAt)
		assert.Equal(t, updated, card.UpdatedAt)
		assert.Equal(t, "c1", card.ID)
	})

	t.Run("Rejected update leaves the card unchanged", func(t *testing.T) {
		card, err := NewCard("c1", "Cash", decimal.NewFromInt(10), "", coremocks.NewFixedTimeProvider(t, created))
		require.NoError(t, err)
		before := *card

		empty := ""
		err = card.Apply(CardUpdate{Name: &empty}, coremocks.NewMockTimeProvider(t))

		assert.True(t, errs.IsValidationError(err))
		assert.Equal(t, before, *card)
	})
}
