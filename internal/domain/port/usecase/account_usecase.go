package usecase

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
)

// Credentials is the username/password pair of the demo login
type Credentials struct {
	Username string
	Password string
}

// AccountUseCase owns identity, session state and the backup credential
type AccountUseCase interface {
	Login(ctx context.Context, credentials Credentials) error
	LoginWithFederatedToken(ctx context.Context, token string) error
	// Logout clears the account and wipes all local data and UI state
	Logout(ctx context.Context) error

	Account() *entity.Account
	IsAuthenticated() bool
	Error() string
	ClearError()

	UpdateBackupSettings(ctx context.Context, update entity.BackupCredentialUpdate) error
	GetBackupToken() string
	GetBackupDocumentID() string
	IsBackupConfigured() bool

	ValidateBackupToken(ctx context.Context) (bool, error)
	ListBackups(ctx context.Context) ([]remote.DocumentSummary, error)
	DeleteBackup(ctx context.Context, documentID string) error

	Preferences() entity.UIPreferences
	SetSidebar(ctx context.Context, open bool) error
}
