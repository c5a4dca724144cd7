package repository

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createdAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	syncedAt  = time.Date(2024, 3, 2, 18, 45, 12, 0, time.UTC)
)

func newTestManager(t *testing.T) *database.TestDBManager {
	t.Helper()
	return database.NewTestDBManager(t, logger.NewNoopLogger())
}

func sampleState() *entity.DataState {
	return &entity.DataState{
		Cards: []entity.Card{
			{ID: "card-b", Name: "Savings", Balance: decimal.RequireFromString("1000.50"), Color: "#112533", CreatedAt: createdAt, UpdatedAt: createdAt},
			{ID: "card-a", Name: "Wallet", Balance: decimal.RequireFromString("-20"), Color: "#263d26", CreatedAt: createdAt, UpdatedAt: createdAt},
		},
		Transactions: []entity.Transaction{
			{ID: "tx-2", CardID: "card-b", Amount: decimal.RequireFromString("99.99"), Type: entity.TypeExpense, Description: "Groceries", Date: createdAt.Add(time.Hour), CreatedAt: createdAt},
			{ID: "tx-1", CardID: "card-a", Amount: decimal.RequireFromString("0.01"), Type: entity.TypeIncome, Description: "", Date: createdAt, CreatedAt: createdAt},
		},
		Settings: entity.Settings{
			Currency:     "EUR",
			DateFormat:   "YYYY-MM-DD",
			AutoSync:     true,
			SyncInterval: 15,
		},
		LastSyncTime: &syncedAt,
	}
}

func TestDataRepository_LoadFreshStore(t *testing.T) {
	tm := newTestManager(t)
	repo := NewDataRepository(tm.Manager, tm.Logger)

	state, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Cards)
	assert.Empty(t, state.Transactions)
	assert.Equal(t, entity.DefaultSettings(), state.Settings)
	assert.Nil(t, state.LastSyncTime)
}

func TestDataRepository_SaveAndLoad(t *testing.T) {
	tm := newTestManager(t)
	repo := NewDataRepository(tm.Manager, tm.Logger)
	ctx := context.Background()

	want := sampleState()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, got.Cards, 2)
	assert.Equal(t, "card-b", got.Cards[0].ID, "insertion order is kept")
	assert.Equal(t, "card-a", got.Cards[1].ID)
	assert.True(t, got.Cards[0].Balance.Equal(decimal.RequireFromString("1000.50")))
	assert.True(t, got.Cards[1].Balance.Equal(decimal.RequireFromString("-20")))
	assert.True(t, got.Cards[0].CreatedAt.Equal(createdAt))

	require.Len(t, got.Transactions, 2)
	assert.Equal(t, "tx-2", got.Transactions[0].ID)
	assert.Equal(t, entity.TypeExpense, got.Transactions[0].Type)
	assert.True(t, got.Transactions[0].Amount.Equal(decimal.RequireFromString("99.99")))
	assert.True(t, got.Transactions[0].Date.Equal(createdAt.Add(time.Hour)))
	assert.Equal(t, "", got.Transactions[1].Description)

	assert.Equal(t, want.Settings, got.Settings)
	require.NotNil(t, got.LastSyncTime)
	assert.True(t, got.LastSyncTime.Equal(syncedAt))
}

func TestDataRepository_SaveReplacesPartition(t *testing.T) {
	tm := newTestManager(t)
	repo := NewDataRepository(tm.Manager, tm.Logger)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleState()))

	next := sampleState()
	next.Cards = next.Cards[:1]
	next.Transactions = next.Transactions[:1]
	next.LastSyncTime = nil
	require.NoError(t, repo.Save(ctx, next))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Cards, 1)
	assert.Len(t, got.Transactions, 1)
	assert.Nil(t, got.LastSyncTime)
	assert.Equal(t, int64(1), tm.Count(t, &model.Settings{}))
}

func TestDataRepository_Clear(t *testing.T) {
	tm := newTestManager(t)
	repo := NewDataRepository(tm.Manager, tm.Logger)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleState()))
	require.NoError(t, repo.Clear(ctx))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Cards)
	assert.Empty(t, got.Transactions)
	assert.Equal(t, entity.DefaultSettings(), got.Settings)
}

func TestDataRepository_FailedSaveKeepsPreviousRows(t *testing.T) {
	tm := newTestManager(t)
	repo := NewDataRepository(tm.Manager, tm.Logger)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleState()))

	broken := sampleState()
	broken.Cards = append(broken.Cards, broken.Cards[0]) // duplicate primary key
	err := repo.Save(ctx, broken)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPersistence)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Cards, 2)
	assert.Len(t, got.Transactions, 2)
}

func TestDataRepository_BrokenSchema(t *testing.T) {
	tm := newTestManager(t)
	repo := NewDataRepository(tm.Manager, tm.Logger)
	tm.DropTable(t, &model.Card{})

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPersistence)
	assert.Contains(t, err.Error(), "schema is not migrated")
}

func TestAccountRepository(t *testing.T) {
	tm := newTestManager(t)
	repo := NewAccountRepository(tm.Manager, tm.Logger)
	ctx := context.Background()

	t.Run("signed out", func(t *testing.T) {
		account, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("save and load", func(t *testing.T) {
		account := &entity.Account{
			ID:         "sub-123",
			Username:   "Ada Lovelace",
			Name:       "Ada Lovelace",
			Email:      "ada@example.com",
			Picture:    "https://example.com/ada.png",
			Provider:   entity.ProviderGoogle,
			ExternalID: "sub-123",
			Backup: entity.BackupCredential{
				Token:        "ghp_secret",
				DocumentID:   "gist-1",
				AutoSync:     true,
				LastSyncTime: &syncedAt,
			},
		}
		require.NoError(t, repo.Save(ctx, account))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, account.ID, got.ID)
		assert.Equal(t, account.Email, got.Email)
		assert.Equal(t, entity.ProviderGoogle, got.Provider)
		assert.Equal(t, "ghp_secret", got.Backup.Token)
		assert.Equal(t, "gist-1", got.Backup.DocumentID)
		assert.True(t, got.Backup.AutoSync)
		require.NotNil(t, got.Backup.LastSyncTime)
		assert.True(t, got.Backup.LastSyncTime.Equal(syncedAt))
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, entity.NewDemoAccount("user")))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.DemoAccountID, got.ID)
		assert.Empty(t, got.Backup.Token)
		assert.Nil(t, got.Backup.LastSyncTime)
		assert.Equal(t, int64(1), tm.Count(t, &model.Account{}))
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, repo.Clear(ctx))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestPreferencesRepository(t *testing.T) {
	tm := newTestManager(t)
	repo := NewPreferencesRepository(tm.Manager, tm.Logger)
	ctx := context.Background()

	prefs, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultUIPreferences(), prefs)

	require.NoError(t, repo.Save(ctx, entity.UIPreferences{SidebarOpen: true}))
	prefs, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, prefs.SidebarOpen)

	require.NoError(t, repo.Clear(ctx))
	prefs, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultUIPreferences(), prefs)
}

func TestErrorClassifier(t *testing.T) {
	c := NewErrorClassifier()

	cases := []struct {
		msg  string
		want ErrorType
	}{
		{"UNIQUE constraint failed: cards.id", DuplicateKeyError},
		{"database is locked", LockError},
		{"no such table: cards", SchemaError},
		{"dial tcp: connection refused", TransientError},
		{"FOREIGN KEY constraint failed", ConstraintError},
		{"something odd", UnknownError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Classify(errString(tc.msg)), tc.msg)
	}
	assert.Equal(t, ErrorType(""), c.Classify(nil))
}

type errString string

func (e errString) Error() string { return string(e) }
