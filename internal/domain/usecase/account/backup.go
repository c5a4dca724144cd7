package account

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
)

// UpdateBackupSettings merges update into the signed-in account's credential and persists it
func (s *Store) UpdateBackupSettings(ctx context.Context, update entity.BackupCredentialUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account == nil {
		return errs.ErrNotAuthenticated
	}

	next := s.account.Clone()
	next.Backup = next.Backup.Merge(update)

	if err := s.accounts.Save(ctx, next); err != nil {
		s.logger.Error("Failed to persist backup settings", coreport.ErrorFields(err, map[string]any{
			"account_id": next.ID,
		}))
		return errs.WrapPersistence(err)
	}

	s.account = next
	s.logger.Debug("Backup settings updated", map[string]any{
		"account_id":  next.ID,
		"configured":  next.Backup.IsConfigured(),
		"document_id": next.Backup.DocumentID,
		"auto_sync":   next.Backup.AutoSync,
	})
	return nil
}

// BackupCredential returns a consistent copy of the credential
func (s *Store) BackupCredential() (entity.BackupCredential, bool) {
	account := s.Account()
	if account == nil {
		return entity.BackupCredential{}, false
	}
	return account.Backup, true
}

// GetBackupToken returns the token, "" when absent
func (s *Store) GetBackupToken() string {
	credential, _ := s.BackupCredential()
	return credential.Token
}

// GetBackupDocumentID returns the document id, "" when absent
func (s *Store) GetBackupDocumentID() string {
	credential, _ := s.BackupCredential()
	return credential.DocumentID
}

// IsBackupConfigured is true iff the signed-in account holds a non-blank token
func (s *Store) IsBackupConfigured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account.IsBackupConfigured()
}

// ValidateBackupToken probes the backup store with the stored token
func (s *Store) ValidateBackupToken(ctx context.Context) (bool, error) {
	gateway, _, err := s.gateway()
	if err != nil {
		return false, err
	}
	return gateway.ValidateToken(ctx), nil
}

// ListBackups returns the backup documents visible to the stored token
func (s *Store) ListBackups(ctx context.Context) ([]remote.DocumentSummary, error) {
	gateway, _, err := s.gateway()
	if err != nil {
		return nil, err
	}

	docs, err := gateway.ListDocuments(ctx)
	if err != nil {
		s.logger.Warn("Failed to list backups", coreport.ErrorFields(err, nil))
		return nil, err
	}
	return docs, nil
}

// DeleteBackup removes a backup document.
// Deleting the document the account syncs with also forgets its id.
func (s *Store) DeleteBackup(ctx context.Context, documentID string) error {
	gateway, credential, err := s.gateway()
	if err != nil {
		return err
	}
	if documentID == "" {
		documentID = credential.DocumentID
	}
	if documentID == "" {
		return errs.ErrBackupDocumentIDMissing
	}

	if err := gateway.DeleteDocument(ctx, documentID); err != nil {
		s.logger.Warn("Failed to delete backup", coreport.ErrorFields(err, map[string]any{
			"document_id": documentID,
		}))
		return err
	}

	s.logger.Info("Backup deleted", map[string]any{
		"document_id": documentID,
	})

	if documentID != credential.DocumentID {
		return nil
	}
	empty := ""
	return s.UpdateBackupSettings(ctx, entity.BackupCredentialUpdate{DocumentID: &empty})
}

func (s *Store) gateway() (remote.BackupGateway, entity.BackupCredential, error) {
	credential, ok := s.BackupCredential()
	if !ok {
		return nil, credential, errs.ErrNotAuthenticated
	}
	if !credential.IsConfigured() {
		return nil, credential, errs.ErrBackupTokenMissing
	}
	return s.gateways(credential.Token, credential.DocumentID), credential, nil
}
