package data

import (
	"context"
	"slices"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
)

// AddTransaction records a movement against an existing card
func (s *Store) AddTransaction(ctx context.Context, cardID string, input usecase.TransactionInput) (*entity.Transaction, error) {
	var created entity.Transaction

	err := s.mutate(ctx, "add_transaction", func(next *entity.DataState) error {
		if !slices.ContainsFunc(next.Cards, func(c entity.Card) bool { return c.ID == cardID }) {
			return errs.NewCardNotFoundError(cardID)
		}

		tx, err := entity.NewTransaction(
			s.idGenerator.NewID(),
			cardID,
			input.Amount,
			input.Type,
			input.Description,
			input.Date,
			s.timeProvider,
		)
		if err != nil {
			return err
		}
		next.Transactions = append(next.Transactions, *tx)
		created = *tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction added", map[string]any{
		"transaction_id": created.ID,
		"card_id":        cardID,
		"type":           string(created.Type),
		"amount":         entity.FormatAmount(created.Amount),
	})
	return &created, nil
}

// UpdateTransaction merges update into the transaction.
// Moving a transaction to another card requires that card to exist.
func (s *Store) UpdateTransaction(ctx context.Context, id string, update entity.TransactionUpdate) error {
	return s.mutate(ctx, "update_transaction", func(next *entity.DataState) error {
		idx := slices.IndexFunc(next.Transactions, func(tx entity.Transaction) bool { return tx.ID == id })
		if idx < 0 {
			return errs.NewTransactionNotFoundError(id)
		}
		if update.CardID != nil && !slices.ContainsFunc(next.Cards, func(c entity.Card) bool { return c.ID == *update.CardID }) {
			return errs.NewCardNotFoundError(*update.CardID)
		}
		return next.Transactions[idx].Apply(update)
	})
}

// DeleteTransaction removes one transaction
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_transaction", func(next *entity.DataState) error {
		idx := slices.IndexFunc(next.Transactions, func(tx entity.Transaction) bool { return tx.ID == id })
		if idx < 0 {
			return errs.NewTransactionNotFoundError(id)
		}
		next.Transactions = slices.Delete(next.Transactions, idx, idx+1)
		return nil
	})
}
