package data

import (
	"slices"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CalculateCardBalance derives the current balance of a card.
// An unknown card yields the sum of its orphaned transactions against a zero baseline.
func (s *Store) CalculateCardBalance(cardID string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var card *entity.Card
	if idx := slices.IndexFunc(s.state.Cards, func(c entity.Card) bool { return c.ID == cardID }); idx >= 0 {
		card = &s.state.Cards[idx]
	}
	return entity.CardBalance(card, cardID, s.state.Transactions)
}

// GetTotalBalance sums the derived balances of every card
func (s *Store) GetTotalBalance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.TotalBalance(s.state.Cards, s.state.Transactions)
}

// GetTransactionsByCard returns the card's transactions, newest first
func (s *Store) GetTransactionsByCard(cardID string) []entity.Transaction {
	s.mu.RLock()
	result := make([]entity.Transaction, 0)
	for _, tx := range s.state.Transactions {
		if tx.CardID == cardID {
			result = append(result, tx)
		}
	}
	s.mu.RUnlock()

	entity.SortByDateDesc(result)
	return result
}

// GetRecentTransactions returns the newest transactions across all cards
func (s *Store) GetRecentTransactions(limit int) []entity.Transaction {
	if limit <= 0 {
		limit = s.opts.RecentLimit
	}

	result := s.Transactions()
	entity.SortByDateDesc(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// GetCardByID returns a copy of the card
func (s *Store) GetCardByID(id string) (*entity.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.state.Cards, func(c entity.Card) bool { return c.ID == id })
	if idx < 0 {
		return nil, false
	}
	card := s.state.Cards[idx]
	return &card, true
}

// Cards returns a copy of every card in insertion order
func (s *Store) Cards() []entity.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Cards)
}

// Transactions returns a copy of every transaction in insertion order
func (s *Store) Transactions() []entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Transactions)
}

// Settings returns the current settings
func (s *Store) Settings() entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}
