package data

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	remoteport "github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
	coremocks "github.com/amirhossein-jamali/balance-app/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/balance-app/mocks/port/persistence"
	remotemocks "github.com/amirhossein-jamali/balance-app/mocks/port/remote"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)

// fakeCredentials is a stateful credential source that merges updates like the account store
type fakeCredentials struct {
	mu        sync.Mutex
	account   *entity.Account
	updateErr error
	updates   []entity.BackupCredentialUpdate
}

func newFakeCredentials(token, documentID string) *fakeCredentials {
	account := entity.NewDemoAccount("user")
	account.Backup = entity.BackupCredential{Token: token, DocumentID: documentID}
	return &fakeCredentials{account: account}
}

func (f *fakeCredentials) Account() *entity.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.account.Clone()
}

func (f *fakeCredentials) UpdateBackupSettings(_ context.Context, update entity.BackupCredentialUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.account == nil {
		return errs.ErrNotAuthenticated
	}
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, update)
	f.account.Backup = f.account.Backup.Merge(update)
	return nil
}

type testDeps struct {
	repo        *persistencemocks.MockDataRepository
	gateway     *remotemocks.MockBackupGateway
	credentials *fakeCredentials
	factoryHits int
	mu          sync.Mutex
}

func (d *testDeps) factoryCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.factoryHits
}

// newTestStore wires a store whose repository accepts every save
func newTestStore(t *testing.T, credentials *fakeCredentials) (*Store, *testDeps) {
	t.Helper()

	repo := persistencemocks.NewMockDataRepository(t)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	return newTestStoreWithRepo(t, credentials, repo)
}

func newTestStoreWithRepo(t *testing.T, credentials *fakeCredentials, repo *persistencemocks.MockDataRepository) (*Store, *testDeps) {
	t.Helper()
	return newTestStoreWithLogger(t, credentials, repo, coremocks.NewPermissiveMockLogger(t))
}

func newTestStoreWithLogger(t *testing.T, credentials *fakeCredentials, repo *persistencemocks.MockDataRepository, logger coreport.Logger) (*Store, *testDeps) {
	t.Helper()

	deps := &testDeps{
		repo:        repo,
		gateway:     remotemocks.NewMockBackupGateway(t),
		credentials: credentials,
	}

	factory := deps.gateway.Factory()
	countingFactory := func(token, documentID string) remoteport.BackupGateway {
		deps.mu.Lock()
		deps.factoryHits++
		deps.mu.Unlock()
		return factory(token, documentID)
	}

	store := NewStore(
		deps.repo,
		credentials,
		countingFactory,
		coremocks.NewSequentialIDGenerator(t, "id"),
		coremocks.NewFixedTimeProvider(t, fixedNow),
		logger,
		Options{},
	)
	t.Cleanup(store.Shutdown)
	return store, deps
}
