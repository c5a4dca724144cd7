package account

import (
	"context"
	"errors"
	"testing"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
	coremocks "github.com/amirhossein-jamali/balance-app/mocks/port/core"
	identitymocks "github.com/amirhossein-jamali/balance-app/mocks/port/identity"
	persistencemocks "github.com/amirhossein-jamali/balance-app/mocks/port/persistence"
	remotemocks "github.com/amirhossein-jamali/balance-app/mocks/port/remote"
	usecasemocks "github.com/amirhossein-jamali/balance-app/mocks/port/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type storeMocks struct {
	accounts    *persistencemocks.MockAccountRepository
	preferences *persistencemocks.MockPreferencesRepository
	decoder     *identitymocks.MockDecoder
	gateway     *remotemocks.MockBackupGateway
	wiper       *usecasemocks.MockDataWiper
}

func newTestStore(t *testing.T) (*Store, storeMocks) {
	t.Helper()

	m := storeMocks{
		accounts:    persistencemocks.NewMockAccountRepository(t),
		preferences: persistencemocks.NewMockPreferencesRepository(t),
		decoder:     identitymocks.NewMockDecoder(t),
		gateway:     remotemocks.NewMockBackupGateway(t),
		wiper:       usecasemocks.NewMockDataWiper(t),
	}

	store := NewStore(
		m.accounts,
		m.preferences,
		m.decoder,
		m.gateway.Factory(),
		DefaultDemoCredentials(),
		coremocks.NewPermissiveMockLogger(t),
	)
	store.SetDataWiper(m.wiper)
	return store, m
}

// signedIn returns a store with the demo account signed in and the given credential
func signedIn(t *testing.T, credential entity.BackupCredential) (*Store, storeMocks) {
	t.Helper()

	store, m := newTestStore(t)
	account := entity.NewDemoAccount("user")
	account.Backup = credential
	m.accounts.On("Load", mock.Anything).Return(account, nil).Once()
	m.preferences.On("Load", mock.Anything).Return(entity.DefaultUIPreferences(), nil).Once()
	require.NoError(t, store.Load(context.Background()))
	return store, m
}

func TestStore_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Demo credentials", func(t *testing.T) {
		store, m := newTestStore(t)
		m.accounts.On("Save", mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
			return a.ID == entity.DemoAccountID && a.Username == "user"
		})).Return(nil).Once()

		err := store.Login(ctx, usecase.Credentials{Username: "user", Password: "pass"})

		require.NoError(t, err)
		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, entity.DemoAccountID, store.Account().ID)
		assert.Equal(t, entity.ProviderDemo, store.Account().Provider)
		assert.Empty(t, store.Error())
		assert.False(t, store.IsLoading())
	})

	t.Run("Wrong password", func(t *testing.T) {
		store, m := newTestStore(t)
		m.accounts.On("Clear", mock.Anything).Return(nil).Once()

		err := store.Login(ctx, usecase.Credentials{Username: "user", Password: "nope"})

		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
		assert.True(t, errs.IsAuthError(err))
		assert.False(t, store.IsAuthenticated())
		assert.Nil(t, store.Account())
		assert.NotEmpty(t, store.Error())

		store.ClearError()
		assert.Empty(t, store.Error())
	})

	t.Run("Persistence failure signs out", func(t *testing.T) {
		store, m := newTestStore(t)
		m.accounts.On("Save", mock.Anything, mock.Anything).Return(errors.New("locked")).Once()
		m.accounts.On("Clear", mock.Anything).Return(nil).Once()

		err := store.Login(ctx, usecase.Credentials{Username: "user", Password: "pass"})

		assert.ErrorIs(t, err, errs.ErrPersistence)
		assert.False(t, store.IsAuthenticated())
	})
}

func TestStore_LoginWithFederatedToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Decoded identity becomes the account", func(t *testing.T) {
		store, m := newTestStore(t)
		m.decoder.On("Decode", mock.Anything, "id-token").Return(&entity.FederatedIdentity{
			Subject: "1234567890",
			Email:   "ada@example.com",
			Name:    "Ada Lovelace",
			Picture: "https://example.com/ada.png",
		}, nil).Once()
		m.accounts.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		require.NoError(t, store.LoginWithFederatedToken(ctx, "id-token"))

		account := store.Account()
		assert.Equal(t, "1234567890", account.ID)
		assert.Equal(t, "Ada Lovelace", account.Username)
		assert.Equal(t, "ada@example.com", account.Email)
		assert.Equal(t, entity.ProviderGoogle, account.Provider)
		assert.Equal(t, "1234567890", account.ExternalID)
	})

	t.Run("Undecodable token", func(t *testing.T) {
		store, m := newTestStore(t)
		m.decoder.On("Decode", mock.Anything, "garbage").Return(nil, errors.New("malformed")).Once()
		m.accounts.On("Clear", mock.Anything).Return(nil).Once()

		err := store.LoginWithFederatedToken(ctx, "garbage")

		assert.ErrorIs(t, err, errs.ErrInvalidFederatedToken)
		assert.Nil(t, store.Account())
		assert.Contains(t, store.Error(), "malformed")
	})
}

func TestStore_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("Wipes every partition", func(t *testing.T) {
		store, m := signedIn(t, entity.BackupCredential{Token: "ghp_token"})
		m.preferences.On("Save", mock.Anything, entity.UIPreferences{SidebarOpen: true}).Return(nil).Once()
		require.NoError(t, store.SetSidebar(ctx, true))

		m.wiper.On("ClearData", mock.Anything).Return(nil).Once()
		m.accounts.On("Clear", mock.Anything).Return(nil).Once()
		m.preferences.On("Clear", mock.Anything).Return(nil).Once()

		require.NoError(t, store.Logout(ctx))

		assert.False(t, store.IsAuthenticated())
		assert.False(t, store.IsBackupConfigured())
		assert.Equal(t, entity.DefaultUIPreferences(), store.Preferences())
	})

	t.Run("Storage failure still signs out", func(t *testing.T) {
		store, m := signedIn(t, entity.BackupCredential{})
		m.wiper.On("ClearData", mock.Anything).Return(errs.ErrPersistence).Once()
		m.accounts.On("Clear", mock.Anything).Return(nil).Once()
		m.preferences.On("Clear", mock.Anything).Return(nil).Once()

		err := store.Logout(ctx)

		assert.ErrorIs(t, err, errs.ErrPersistence)
		assert.False(t, store.IsAuthenticated())
	})
}

func TestStore_BackupSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Signed out", func(t *testing.T) {
		store, _ := newTestStore(t)
		token := "ghp_token"

		err := store.UpdateBackupSettings(ctx, entity.BackupCredentialUpdate{Token: &token})

		assert.ErrorIs(t, err, errs.ErrNotAuthenticated)
		assert.Empty(t, store.GetBackupToken())
		assert.False(t, store.IsBackupConfigured())
	})

	t.Run("Merge and persist", func(t *testing.T) {
		store, m := signedIn(t, entity.BackupCredential{DocumentID: "gist-1"})
		m.accounts.On("Save", mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
			return a.Backup.Token == "ghp_token" && a.Backup.DocumentID == "gist-1"
		})).Return(nil).Once()

		token := "  ghp_token "
		require.NoError(t, store.UpdateBackupSettings(ctx, entity.BackupCredentialUpdate{Token: &token}))

		assert.Equal(t, "ghp_token", store.GetBackupToken())
		assert.Equal(t, "gist-1", store.GetBackupDocumentID())
		assert.True(t, store.IsBackupConfigured())
	})

	t.Run("Blank token is not configured", func(t *testing.T) {
		store, _ := signedIn(t, entity.BackupCredential{Token: "   "})
		assert.False(t, store.IsBackupConfigured())
	})

	t.Run("Persistence failure keeps the old credential", func(t *testing.T) {
		store, m := signedIn(t, entity.BackupCredential{Token: "old"})
		m.accounts.On("Save", mock.Anything, mock.Anything).Return(errors.New("locked")).Once()

		token := "new"
		err := store.UpdateBackupSettings(ctx, entity.BackupCredentialUpdate{Token: &token})

		assert.ErrorIs(t, err, errs.ErrPersistence)
		assert.Equal(t, "old", store.GetBackupToken())
	})

	t.Run("Returned account is a copy", func(t *testing.T) {
		store, _ := signedIn(t, entity.BackupCredential{Token: "ghp_token"})

		account := store.Account()
		account.Backup.Token = "tampered"

		assert.Equal(t, "ghp_token", store.GetBackupToken())
	})
}

func TestStore_RemoteBackups(t *testing.T) {
	ctx := context.Background()

	t.Run("Validate without token", func(t *testing.T) {
		store, _ := signedIn(t, entity.BackupCredential{})

		ok, err := store.ValidateBackupToken(ctx)

		assert.False(t, ok)
		assert.ErrorIs(t, err, errs.ErrBackupTokenMissing)
	})

	t.Run("Validate token", func(t *testing.T) {
		store, m := signedIn(t, entity.BackupCredential{Token: "ghp_token"})
		m.gateway.On("ValidateToken", mock.Anything).Return(true).Once()

		ok, err := store.ValidateBackupToken(ctx)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("List backups", func(t *testing.T) {
		store, m := signedIn(t, entity.BackupCredential{Token: "ghp_token"})
		m.gateway.On("ListDocuments", mock.Anything).Return(nil, errs.NewRemoteError(errs.RemoteForbidden, 403, "list", nil)).Once()

		docs, err := store.ListBackups(ctx)

		assert.Nil(t, docs)
		assert.Equal(t, errs.RemoteForbidden, errs.RemoteErrorKindOf(err))
	})

	t.Run("Deleting the synced document forgets its id", func(t *testing.T) {
		store, m := signedIn(t, entity.BackupCredential{Token: "ghp_token", DocumentID: "gist-1"})
		m.gateway.On("DeleteDocument", mock.Anything, "gist-1").Return(nil).Once()
		m.accounts.On("Save", mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
			return a.Backup.DocumentID == ""
		})).Return(nil).Once()

		require.NoError(t, store.DeleteBackup(ctx, ""))

		assert.Empty(t, store.GetBackupDocumentID())
		assert.True(t, store.IsBackupConfigured())
	})

	t.Run("Deleting another document keeps the id", func(t *testing.T) {
		store, m := signedIn(t, entity.BackupCredential{Token: "ghp_token", DocumentID: "gist-1"})
		m.gateway.On("DeleteDocument", mock.Anything, "gist-2").Return(nil).Once()

		require.NoError(t, store.DeleteBackup(ctx, "gist-2"))

		assert.Equal(t, "gist-1", store.GetBackupDocumentID())
	})

	t.Run("Nothing to delete", func(t *testing.T) {
		store, _ := signedIn(t, entity.BackupCredential{Token: "ghp_token"})
		assert.ErrorIs(t, store.DeleteBackup(ctx, ""), errs.ErrBackupDocumentIDMissing)
	})
}

func TestStore_Preferences(t *testing.T) {
	ctx := context.Background()

	t.Run("Sidebar starts closed", func(t *testing.T) {
		store, _ := newTestStore(t)
		assert.False(t, store.Preferences().SidebarOpen)
	})

	t.Run("Failed save keeps the old value", func(t *testing.T) {
		store, m := newTestStore(t)
		m.preferences.On("Save", mock.Anything, mock.Anything).Return(errors.New("locked")).Once()

		assert.ErrorIs(t, store.SetSidebar(ctx, true), errs.ErrPersistence)
		assert.False(t, store.Preferences().SidebarOpen)
	})
}
