package data

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
)

// Default store options
const (
	DefaultSyncTimeout = 30 * coreport.Second
	DefaultRecentLimit = 5
)

// Options tunes the data store
type Options struct {
	// SnapshotVersion is written into every pushed snapshot
	SnapshotVersion string
	// SyncTimeout bounds a whole sync attempt on top of the gateway's own request timeout
	SyncTimeout coreport.Duration
	// RecentLimit is used by GetRecentTransactions when the caller passes limit <= 0
	RecentLimit int
}

func (o Options) withDefaults() Options {
	if o.SnapshotVersion == "" {
		o.SnapshotVersion = entity.SnapshotVersion
	}
	if o.SyncTimeout <= 0 {
		o.SyncTimeout = DefaultSyncTimeout
	}
	if o.RecentLimit <= 0 {
		o.RecentLimit = DefaultRecentLimit
	}
	return o
}

// SettingsListener is notified after settings change
type SettingsListener func(settings entity.Settings)

// Store holds cards, transactions and settings in memory, persists every
// accepted change and drives the sync state machine.
type Store struct {
	repo         persistence.DataRepository
	credentials  usecase.BackupCredentialSource
	gateways     remote.GatewayFactory
	idGenerator  coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	queue        *SyncQueue
	opts         Options

	// mutateMu serializes writers; mu guards the fields below for readers
	mutateMu sync.Mutex
	mu       sync.RWMutex

	state      *entity.DataState
	syncStatus usecase.SyncStatus
	isLoading  bool
	errMsg     string
	listeners  []SettingsListener
}

var _ usecase.DataUseCase = (*Store)(nil)
var _ usecase.DataWiper = (*Store)(nil)

// NewStore creates a data store with an empty data set
func NewStore(
	repo persistence.DataRepository,
	credentials usecase.BackupCredentialSource,
	gateways remote.GatewayFactory,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	opts Options,
) *Store {
	return &Store{
		repo:         repo,
		credentials:  credentials,
		gateways:     gateways,
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
		logger:       logger,
		queue:        NewSyncQueue(logger),
		opts:         opts.withDefaults(),
		state:        entity.NewDataState(),
		syncStatus:   usecase.SyncIdle,
	}
}

// Load hydrates the store from the persisted data partition
func (s *Store) Load(ctx context.Context) error {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	state, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load local data", coreport.ErrorFields(err, nil))
		return errs.WrapPersistence(err)
	}
	if state == nil {
		state = entity.NewDataState()
	}

	s.mu.Lock()
	s.state = cloneState(state)
	s.mu.Unlock()

	s.logger.Info("Local data loaded", map[string]any{
		"cards":        len(state.Cards),
		"transactions": len(state.Transactions),
	})
	s.notifySettings(state.Settings)
	return nil
}

// OnSettingsChange registers a listener called after settings are replaced
func (s *Store) OnSettingsChange(listener SettingsListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Status returns a consistent view of the sync status, loading flag and last error
func (s *Store) Status() usecase.StatusView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return usecase.StatusView{
		SyncStatus:   s.syncStatus,
		LastSyncTime: copyTime(s.state.LastSyncTime),
		IsLoading:    s.isLoading,
		Error:        s.errMsg,
	}
}

// SetError records a human-readable error message
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// ClearError drops the last error message
func (s *Store) ClearError() {
	s.SetError("")
}

// ClearData resets cards, transactions and settings to a fresh data set and
// clears the persisted partition
func (s *Store) ClearData(ctx context.Context) error {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear local data", coreport.ErrorFields(err, nil))
		s.SetError(err.Error())
		return errs.WrapPersistence(err)
	}

	s.mu.Lock()
	s.state = entity.NewDataState()
	s.syncStatus = usecase.SyncIdle
	s.isLoading = false
	s.errMsg = ""
	settings := s.state.Settings
	s.mu.Unlock()

	s.logger.Info("Local data cleared", nil)
	s.notifySettings(settings)
	return nil
}

// Shutdown waits for queued sync attempts and stops the sync workers
func (s *Store) Shutdown() {
	s.queue.Shutdown()
}

// mutateFunc edits a private copy of the state; returning an error discards the copy
type mutateFunc func(next *entity.DataState) error

// mutate runs the two-phase mutation protocol.
//
// Phase 1 applies fn to a copy, persists the copy and only then swaps it in.
// Any failure leaves the in-memory state untouched and is returned.
// Phase 2 pushes to the backup store when auto-sync is on; its outcome is only
// reflected in the sync status.
func (s *Store) mutate(ctx context.Context, operation string, fn mutateFunc) error {
	if err := s.apply(ctx, operation, fn); err != nil {
		return err
	}
	s.autoSync(ctx, operation)
	return nil
}

func (s *Store) apply(ctx context.Context, operation string, fn mutateFunc) error {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	s.mu.Lock()
	s.isLoading = true
	s.errMsg = ""
	next := cloneState(s.state)
	s.mu.Unlock()

	err := fn(next)
	if err == nil {
		if saveErr := s.repo.Save(ctx, next); saveErr != nil {
			err = errs.WrapPersistence(saveErr)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false

	if err != nil {
		s.errMsg = err.Error()
		s.logger.Warn("Data mutation rejected", coreport.ErrorFields(err, map[string]any{
			"operation": operation,
		}))
		return err
	}

	s.state = next
	s.logger.Debug("Data mutation applied", map[string]any{
		"operation": operation,
	})
	return nil
}

func (s *Store) autoSync(ctx context.Context, operation string) {
	if !s.Settings().AutoSync {
		return
	}
	if !s.credentials.Account().IsBackupConfigured() {
		return
	}

	if err := s.SyncToCloud(ctx); err != nil {
		s.logger.Warn("Auto-sync after mutation failed", coreport.ErrorFields(err, map[string]any{
			"operation": operation,
		}))
	}
}

func (s *Store) notifySettings(settings entity.Settings) {
	s.mu.RLock()
	listeners := make([]SettingsListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(settings)
	}
}

func cloneState(state *entity.DataState) *entity.DataState {
	next := &entity.DataState{
		Cards:        make([]entity.Card, len(state.Cards)),
		Transactions: make([]entity.Transaction, len(state.Transactions)),
		Settings:     state.Settings,
		LastSyncTime: copyTime(state.LastSyncTime),
	}
	copy(next.Cards, state.Cards)
	copy(next.Transactions, state.Transactions)
	return next
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
