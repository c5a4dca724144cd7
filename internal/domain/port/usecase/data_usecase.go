package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SyncStatus is the state of the sync state machine.
// success and error are sticky until the next attempt starts.
type SyncStatus string

// Sync statuses
const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// StatusView is the observable status polled by the presentation layer
type StatusView struct {
	SyncStatus   SyncStatus
	LastSyncTime *time.Time
	IsLoading    bool
	Error        string
}

// CardInput holds the fields of a new card
type CardInput struct {
	Name    string
	Balance decimal.Decimal
	Color   string
}

// TransactionInput holds the fields of a new transaction; a zero Date means now
type TransactionInput struct {
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Description string
	Date        time.Time
}

// DataUseCase owns cards, transactions and settings and syncs them with the backup store
type DataUseCase interface {
	AddCard(ctx context.Context, input CardInput) (*entity.Card, error)
	UpdateCard(ctx context.Context, id string, update entity.CardUpdate) error
	// DeleteCard removes the card and every transaction referencing it
	DeleteCard(ctx context.Context, id string) error

	// AddTransaction fails with ErrCardNotFound when cardID is unknown
	AddTransaction(ctx context.Context, cardID string, input TransactionInput) (*entity.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, update entity.TransactionUpdate) error
	DeleteTransaction(ctx context.Context, id string) error

	CalculateCardBalance(cardID string) decimal.Decimal
	GetTotalBalance() decimal.Decimal
	GetTransactionsByCard(cardID string) []entity.Transaction
	GetRecentTransactions(limit int) []entity.Transaction
	GetCardByID(id string) (*entity.Card, bool)
	Cards() []entity.Card
	Transactions() []entity.Transaction

	Settings() entity.Settings
	UpdateSettings(ctx context.Context, update entity.SettingsUpdate) error

	SyncToCloud(ctx context.Context) error
	SyncFromCloud(ctx context.Context) error
	Status() StatusView
	ClearError()
}

// BackupCredentialSource lends the signed-in account's backup credential to the data store
type BackupCredentialSource interface {
	// Account returns a copy of the signed-in account, nil when signed out
	Account() *entity.Account
	UpdateBackupSettings(ctx context.Context, update entity.BackupCredentialUpdate) error
}

// DataWiper clears every local card, transaction and setting
type DataWiper interface {
	ClearData(ctx context.Context) error
}
