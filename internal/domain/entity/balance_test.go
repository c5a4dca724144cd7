package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCardBalance(t *testing.T) {
	cash := &Card{ID: "cash", Balance: dec("1000")}
	txs := []Transaction{
		{ID: "t1", CardID: "cash", Amount: dec("500"), Type: TypeIncome},
		{ID: "t2", CardID: "cash", Amount: dec("200"), Type: TypeExpense},
		{ID: "t3", CardID: "other", Amount: dec("999"), Type: TypeIncome},
	}

	t.Run("Initial balance plus income minus expense", func(t *testing.T) {
		assert.Equal(t, "1300", CardBalance(cash, cash.ID, txs).String())
	})

	t.Run("Card without transactions", func(t *testing.T) {
		assert.Equal(t, "1000", CardBalance(cash, cash.ID, nil).String())
	})

	t.Run("Missing card sums orphans against zero", func(t *testing.T) {
		orphans := []Transaction{
			{CardID: "gone", Amount: dec("30"), Type: TypeIncome},
			{CardID: "gone", Amount: dec("50"), Type: TypeExpense},
		}
		assert.Equal(t, "-20", CardBalance(nil, "gone", orphans).String())
		assert.True(t, CardBalance(nil, "unknown", nil).IsZero())
	})

	t.Run("Fractional amounts stay exact", func(t *testing.T) {
		card := &Card{ID: "c", Balance: dec("0.1")}
		fractional := []Transaction{{CardID: "c", Amount: dec("0.2"), Type: TypeIncome}}
		assert.Equal(t, "0.3", CardBalance(card, card.ID, fractional).String())
	})
}

func TestTotalBalance(t *testing.T) {
	t.Run("Empty card set is zero", func(t *testing.T) {
		assert.True(t, TotalBalance(nil, nil).IsZero())
	})

	t.Run("Two cards without transactions", func(t *testing.T) {
		cards := []Card{{ID: "a", Balance: dec("100")}, {ID: "b", Balance: dec("-50")}}
		assert.Equal(t, "50", TotalBalance(cards, nil).String())
	})

	t.Run("Equals the sum of card balances", func(t *testing.T) {
		cards := []Card{{ID: "a", Balance: dec("100")}, {ID: "b", Balance: dec("20")}}
		txs := []Transaction{
			{CardID: "a", Amount: dec("10"), Type: TypeExpense},
			{CardID: "b", Amount: dec("5.5"), Type: TypeIncome},
			{CardID: "orphan", Amount: dec("1000"), Type: TypeIncome},
		}

		sum := decimal.Zero
		for i := range cards {
			sum = sum.Add(CardBalance(&cards[i], cards[i].ID, txs))
		}
		assert.True(t, sum.Equal(TotalBalance(cards, txs)))
		assert.Equal(t, "115.5", TotalBalance(cards, txs).String())
	})
}
