package data

import (
	"context"
	"slices"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
)

const (
	operationPush = "push"
	operationPull = "pull"
)

// SyncToCloud pushes the full local data set to the backup store.
// A first push creates the remote document and stores its id in the account.
func (s *Store) SyncToCloud(ctx context.Context) error {
	return s.runSync(ctx, operationPush, s.push)
}

// SyncFromCloud replaces local cards and transactions with the remote snapshot
// and overlays its settings on the local ones.
func (s *Store) SyncFromCloud(ctx context.Context) error {
	return s.runSync(ctx, operationPull, s.pull)
}

func (s *Store) runSync(ctx context.Context, operation string, job func(ctx context.Context, account *entity.Account) error) error {
	account := s.credentials.Account()
	if account == nil {
		s.SetError(errs.ErrNotAuthenticated.Error())
		return errs.ErrNotAuthenticated
	}

	return s.queue.Run(ctx, account.ID, operation, func(ctx context.Context) error {
		// Earlier attempts in the queue may have changed the credential
		account := s.credentials.Account()
		if account == nil {
			s.SetError(errs.ErrNotAuthenticated.Error())
			return errs.ErrNotAuthenticated
		}

		s.setSyncStatus(usecase.SyncSyncing)
		return job(ctx, account)
	})
}

func (s *Store) push(ctx context.Context, account *entity.Account) error {
	credential := account.Backup
	if !credential.IsConfigured() {
		return s.failSync(operationPush, errs.ErrBackupTokenMissing)
	}

	ctx, cancel := s.timeProvider.WithTimeout(ctx, s.opts.SyncTimeout)
	defer cancel()

	now := s.timeProvider.Now()
	snapshot := s.snapshot(now)
	gateway := s.gateways(credential.Token, credential.DocumentID)

	documentID, err := gateway.SaveDocument(ctx, snapshot)
	if err != nil {
		return s.failSync(operationPush, err)
	}

	update := entity.BackupCredentialUpdate{LastSyncTime: &now}
	if credential.DocumentID != documentID {
		update.DocumentID = &documentID
	}
	if err := s.credentials.UpdateBackupSettings(ctx, update); err != nil {
		if update.DocumentID != nil {
			s.logger.Error("Created backup document was not recorded", coreport.ErrorFields(err, map[string]any{
				"document_id": documentID,
			}))
		}
		return s.failSync(operationPush, err)
	}

	s.stampLastSync(ctx, now)
	s.succeedSync(operationPush, now, map[string]any{
		"document_id":  documentID,
		"cards":        len(snapshot.Cards),
		"transactions": len(snapshot.Transactions),
	})
	return nil
}

func (s *Store) pull(ctx context.Context, account *entity.Account) error {
	credential := account.Backup
	if !credential.IsConfigured() {
		return s.failSync(operationPull, errs.ErrBackupTokenMissing)
	}
	if credential.DocumentID == "" {
		return s.failSync(operationPull, errs.ErrBackupDocumentIDMissing)
	}

	ctx, cancel := s.timeProvider.WithTimeout(ctx, s.opts.SyncTimeout)
	defer cancel()

	gateway := s.gateways(credential.Token, credential.DocumentID)
	snapshot, err := gateway.LoadDocument(ctx)
	if err != nil {
		return s.failSync(operationPull, err)
	}

	if _, err := s.Settings().Merge(snapshot.Settings); err != nil {
		return s.failSync(operationPull, err)
	}

	syncTime := snapshot.LastSyncTime
	if syncTime.IsZero() {
		syncTime = s.timeProvider.Now()
	}

	settings, err := s.replaceFromSnapshot(ctx, snapshot, syncTime)
	if err != nil {
		return s.failSync(operationPull, err)
	}

	// Local data is already replaced, so a failed account stamp is only logged
	if err := s.credentials.UpdateBackupSettings(ctx, entity.BackupCredentialUpdate{LastSyncTime: &syncTime}); err != nil {
		s.logger.Warn("Failed to record pull time on account", coreport.ErrorFields(err, map[string]any{
			"document_id": credential.DocumentID,
		}))
	}

	s.succeedSync(operationPull, syncTime, map[string]any{
		"document_id":  credential.DocumentID,
		"cards":        len(snapshot.Cards),
		"transactions": len(snapshot.Transactions),
	})
	s.notifySettings(settings)
	return nil
}

// replaceFromSnapshot swaps in the remote cards and transactions wholesale
func (s *Store) replaceFromSnapshot(ctx context.Context, snapshot *entity.Snapshot, syncTime time.Time) (entity.Settings, error) {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	s.mu.RLock()
	next := cloneState(s.state)
	s.mu.RUnlock()

	settings, err := next.Settings.Merge(snapshot.Settings)
	if err != nil {
		return entity.Settings{}, err
	}

	next.Cards = slices.Clone(snapshot.Cards)
	if next.Cards == nil {
		next.Cards = []entity.Card{}
	}
	next.Transactions = slices.Clone(snapshot.Transactions)
	if next.Transactions == nil {
		next.Transactions = []entity.Transaction{}
	}
	next.Settings = settings
	next.LastSyncTime = &syncTime

	if err := s.repo.Save(ctx, next); err != nil {
		return entity.Settings{}, errs.WrapPersistence(err)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return settings, nil
}

// stampLastSync persists the push time; the remote copy is already written so
// a local failure is only logged
func (s *Store) stampLastSync(ctx context.Context, syncTime time.Time) {
	s.mutateMu.Lock()
	defer s.mutateMu.Unlock()

	s.mu.RLock()
	next := cloneState(s.state)
	s.mu.RUnlock()
	next.LastSyncTime = &syncTime

	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Warn("Failed to persist last sync time", coreport.ErrorFields(err, nil))
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
}

func (s *Store) snapshot(now time.Time) *entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &entity.Snapshot{
		Cards:        slices.Clone(s.state.Cards),
		Transactions: slices.Clone(s.state.Transactions),
		Settings:     s.state.Settings.AsUpdate(),
		Version:      s.opts.SnapshotVersion,
		LastSyncTime: now,
	}
}

func (s *Store) setSyncStatus(status usecase.SyncStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncStatus = status
}

func (s *Store) succeedSync(operation string, syncTime time.Time, fields map[string]any) {
	s.mu.Lock()
	s.syncStatus = usecase.SyncSuccess
	s.state.LastSyncTime = &syncTime
	s.errMsg = ""
	s.mu.Unlock()

	fields["operation"] = operation
	fields["last_sync_time"] = syncTime.Format(time.RFC3339)
	s.logger.Info("Sync completed", fields)
}

// failSync moves the state machine to error and records a readable message
func (s *Store) failSync(operation string, err error) error {
	s.mu.Lock()
	s.syncStatus = usecase.SyncError
	s.errMsg = err.Error()
	s.mu.Unlock()

	s.logger.Error("Sync failed", coreport.ErrorFields(err, map[string]any{
		"operation": operation,
	}))
	return err
}
