package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const insertBatchSize = 200

// DataRepository stores cards, transactions and settings using GORM
type DataRepository struct {
	storeBase
}

// NewDataRepository creates a new DataRepository instance
func NewDataRepository(manager *database.Manager, logger coreport.Logger) *DataRepository {
	return &DataRepository{storeBase: newStoreBase(manager, logger, database.PartitionData)}
}

// Load reads the whole partition, cards and transactions in insertion order
func (r *DataRepository) Load(ctx context.Context) (*entity.DataState, error) {
	ctx, cancel := r.manager.WithTimeout(ctx)
	defer cancel()

	db := r.manager.DB().WithContext(ctx)

	var cards []model.Card
	if err := db.Order("position asc").Find(&cards).Error; err != nil {
		return nil, r.handleDatabaseError("loading", err)
	}

	var transactions []model.Transaction
	if err := db.Order("position asc").Find(&transactions).Error; err != nil {
		return nil, r.handleDatabaseError("loading", err)
	}

	state := entity.NewDataState()

	var settings model.Settings
	err := db.Where("id = ?", model.SingletonID).Take(&settings).Error
	switch {
	case err == nil:
		state.Settings = settingsToEntity(settings)
		state.LastSyncTime = copyTime(settings.LastSyncTime)
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, r.handleDatabaseError("loading", err)
	}

	state.Cards = make([]entity.Card, 0, len(cards))
	for _, c := range cards {
		state.Cards = append(state.Cards, cardToEntity(c))
	}
	state.Transactions = make([]entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		state.Transactions = append(state.Transactions, transactionToEntity(t))
	}

	r.logger.Debug("Data partition loaded", map[string]any{
		"cards":        len(state.Cards),
		"transactions": len(state.Transactions),
	})
	return state, nil
}

// Save replaces the partition inside one transaction
func (r *DataRepository) Save(ctx context.Context, state *entity.DataState) error {
	if state == nil {
		state = entity.NewDataState()
	}

	cards := make([]model.Card, 0, len(state.Cards))
	for i, c := range state.Cards {
		cards = append(cards, cardToModel(c, i))
	}
	transactions := make([]model.Transaction, 0, len(state.Transactions))
	for i, t := range state.Transactions {
		transactions = append(transactions, transactionToModel(t, i))
	}
	settings := settingsToModel(state.Settings, state.LastSyncTime)

	ctx, cancel := r.manager.WithTimeout(ctx)
	defer cancel()

	err := database.RetryOnTransientError(ctx, r.manager.RetryConfig(), func() error {
		return r.manager.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := deleteAll(tx, &model.Transaction{}, &model.Card{}); err != nil {
				return err
			}
			if len(cards) > 0 {
				if err := tx.CreateInBatches(&cards, insertBatchSize).Error; err != nil {
					return err
				}
			}
			if len(transactions) > 0 {
				if err := tx.CreateInBatches(&transactions, insertBatchSize).Error; err != nil {
					return err
				}
			}
			return tx.Save(&settings).Error
		})
	}, r.logger)
	if err != nil {
		return r.handleDatabaseError("saving", err)
	}

	r.logger.Debug("Data partition saved", map[string]any{
		"cards":        len(cards),
		"transactions": len(transactions),
	})
	return nil
}

// Clear removes every card, transaction and the settings row
func (r *DataRepository) Clear(ctx context.Context) error {
	ctx, cancel := r.manager.WithTimeout(ctx)
	defer cancel()

	err := r.manager.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteAll(tx, &model.Transaction{}, &model.Card{}, &model.Settings{})
	})
	if err != nil {
		return r.handleDatabaseError("clearing", err)
	}

	r.logger.Info("Data partition cleared", nil)
	return nil
}

func deleteAll(tx *gorm.DB, models ...any) error {
	session := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range models {
		if err := session.Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func cardToModel(c entity.Card, position int) model.Card {
	return model.Card{
		ID:        c.ID,
		Position:  position,
		Name:      c.Name,
		Balance:   c.Balance,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func cardToEntity(c model.Card) entity.Card {
	return entity.Card{
		ID:        c.ID,
		Name:      c.Name,
		Balance:   c.Balance,
		Color:     c.Color,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func transactionToModel(t entity.Transaction, position int) model.Transaction {
	return model.Transaction{
		ID:          t.ID,
		Position:    position,
		CardID:      t.CardID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
}

func transactionToEntity(t model.Transaction) entity.Transaction {
	return entity.Transaction{
		ID:          t.ID,
		CardID:      t.CardID,
		Amount:      t.Amount,
		Type:        entity.TransactionType(t.Type),
		Description: t.Description,
		Date:        t.Date.UTC(),
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

func settingsToModel(s entity.Settings, lastSync *time.Time) model.Settings {
	return model.Settings{
		ID:           model.SingletonID,
		Currency:     s.Currency,
		DateFormat:   s.DateFormat,
		AutoSync:     s.AutoSync,
		SyncInterval: s.SyncInterval,
		LastSyncTime: copyTime(lastSync),
	}
}

func settingsToEntity(s model.Settings) entity.Settings {
	return entity.Settings{
		Currency:     s.Currency,
		DateFormat:   s.DateFormat,
		AutoSync:     s.AutoSync,
		SyncInterval: s.SyncInterval,
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := t.UTC()
	return &c
}
