package repository

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// AccountRepository stores the signed-in account in a single-row table
type AccountRepository struct {
	storeBase
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(manager *database.Manager, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{storeBase: newStoreBase(manager, logger, database.PartitionAccount)}
}

// Load returns the stored account, nil when signed out
func (r *AccountRepository) Load(ctx context.Context) (*entity.Account, error) {
	ctx, cancel := r.manager.WithTimeout(ctx)
	defer cancel()

	var row model.Account
	err := r.manager.DB().WithContext(ctx).Where("id = ?", model.SingletonID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.handleDatabaseError("loading", err)
	}

	return &entity.Account{
		ID:         row.AccountID,
		Username:   row.Username,
		Name:       row.Name,
		Email:      row.Email,
		Picture:    row.Picture,
		Provider:   entity.AuthProvider(row.Provider),
		ExternalID: row.ExternalID,
		Backup: entity.BackupCredential{
			Token:        row.BackupToken,
			DocumentID:   row.BackupDocumentID,
			AutoSync:     row.BackupAutoSync,
			LastSyncTime: copyTime(row.BackupLastSyncTime),
		},
	}, nil
}

// Save replaces the stored account
func (r *AccountRepository) Save(ctx context.Context, account *entity.Account) error {
	if account == nil {
		return r.Clear(ctx)
	}

	row := model.Account{
		ID:                 model.SingletonID,
		AccountID:          account.ID,
		Username:           account.Username,
		Name:               account.Name,
		Email:              account.Email,
		Picture:            account.Picture,
		Provider:           string(account.Provider),
		ExternalID:         account.ExternalID,
		BackupToken:        account.Backup.Token,
		BackupDocumentID:   account.Backup.DocumentID,
		BackupAutoSync:     account.Backup.AutoSync,
		BackupLastSyncTime: copyTime(account.Backup.LastSyncTime),
	}

	ctx, cancel := r.manager.WithTimeout(ctx)
	defer cancel()

	err := database.RetryOnTransientError(ctx, r.manager.RetryConfig(), func() error {
		return r.manager.DB().WithContext(ctx).Save(&row).Error
	}, r.logger)
	if err != nil {
		return r.handleDatabaseError("saving", err)
	}

	r.logger.Debug("Account saved", map[string]any{
		"account_id": account.ID,
		"provider":   string(account.Provider),
	})
	return nil
}

// Clear removes the stored account
func (r *AccountRepository) Clear(ctx context.Context) error {
	ctx, cancel := r.manager.WithTimeout(ctx)
	defer cancel()

	if err := r.manager.DB().WithContext(ctx).Where("id = ?", model.SingletonID).Delete(&model.Account{}).Error; err != nil {
		return r.handleDatabaseError("clearing", err)
	}
	return nil
}
