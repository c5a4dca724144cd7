package entity

import "github.com/shopspring/decimal"

// CardBalance derives the balance of cardID from its initial balance and every
// transaction referencing it. A nil card contributes a zero baseline while its
// orphaned transactions are still summed.
func CardBalance(card *Card, cardID string, txs []Transaction) decimal.Decimal {
	balance := decimal.Zero
	if card != nil {
		balance = card.Balance
		cardID = card.ID
	}

	for _, tx := range txs {
		if tx.CardID == cardID {
			balance = balance.Add(tx.SignedAmount())
		}
	}
	return balance
}

// TotalBalance is the sum of the derived balances of all cards
func TotalBalance(cards []Card, txs []Transaction) decimal.Decimal {
	byCard := make(map[string]decimal.Decimal, len(cards))
	for _, tx := range txs {
		byCard[tx.CardID] = byCard[tx.CardID].Add(tx.SignedAmount())
	}

	total := decimal.Zero
	for _, card := range cards {
		total = total.Add(card.Balance).Add(byCard[card.ID])
	}
	return total
}
