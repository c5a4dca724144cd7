package data

import (
	"context"
	"slices"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
)

// AddCard creates a card with a fresh id and both timestamps set to now
func (s *Store) AddCard(ctx context.Context, input usecase.CardInput) (*entity.Card, error) {
	var created entity.Card

	err := s.mutate(ctx, "add_card", func(next *entity.DataState) error {
		card, err := entity.NewCard(s.idGenerator.NewID(), input.Name, input.Balance, input.Color, s.timeProvider)
		if err != nil {
			return err
		}
		next.Cards = append(next.Cards, *card)
		created = *card
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Card added", map[string]any{
		"card_id": created.ID,
		"name":    created.Name,
	})
	return &created, nil
}

// UpdateCard merges update into the card and bumps its UpdatedAt
func (s *Store) UpdateCard(ctx context.Context, id string, update entity.CardUpdate) error {
	return s.mutate(ctx, "update_card", func(next *entity.DataState) error {
		idx := slices.IndexFunc(next.Cards, func(c entity.Card) bool { return c.ID == id })
		if idx < 0 {
			return errs.NewCardNotFoundError(id)
		}
		return next.Cards[idx].Apply(update, s.timeProvider)
	})
}

// DeleteCard removes the card together with every transaction referencing it
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	removed := 0
	err := s.mutate(ctx, "delete_card", func(next *entity.DataState) error {
		idx := slices.IndexFunc(next.Cards, func(c entity.Card) bool { return c.ID == id })
		if idx < 0 {
			return errs.NewCardNotFoundError(id)
		}
		next.Cards = slices.Delete(next.Cards, idx, idx+1)

		before := len(next.Transactions)
		next.Transactions = slices.DeleteFunc(next.Transactions, func(tx entity.Transaction) bool {
			return tx.CardID == id
		})
		removed = before - len(next.Transactions)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Card deleted", map[string]any{
		"card_id":              id,
		"removed_transactions": removed,
	})
	return nil
}
