package usecase

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockAccountUseCase is a testify mock for usecase.AccountUseCase
type MockAccountUseCase struct {
	mock.Mock
}

// NewMockAccountUseCase creates a MockAccountUseCase that asserts its expectations on cleanup
func NewMockAccountUseCase(t testingT) *MockAccountUseCase {
	m := &MockAccountUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountUseCase) Login(ctx context.Context, credentials usecase.Credentials) error {
	args := m.Called(ctx, credentials)
	return args.Error(0)
}

func (m *MockAccountUseCase) LoginWithFederatedToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAccountUseCase) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountUseCase) Account() *entity.Account {
	args := m.Called()
	account, _ := args.Get(0).(*entity.Account)
	return account
}

func (m *MockAccountUseCase) IsAuthenticated() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAccountUseCase) Error() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAccountUseCase) ClearError() {
	m.Called()
}

func (m *MockAccountUseCase) UpdateBackupSettings(ctx context.Context, update entity.BackupCredentialUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockAccountUseCase) GetBackupToken() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAccountUseCase) GetBackupDocumentID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAccountUseCase) IsBackupConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAccountUseCase) ValidateBackupToken(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountUseCase) ListBackups(ctx context.Context) ([]remote.DocumentSummary, error) {
	args := m.Called(ctx)
	docs, _ := args.Get(0).([]remote.DocumentSummary)
	return docs, args.Error(1)
}

func (m *MockAccountUseCase) DeleteBackup(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockAccountUseCase) Preferences() entity.UIPreferences {
	args := m.Called()
	return args.Get(0).(entity.UIPreferences)
}

func (m *MockAccountUseCase) SetSidebar(ctx context.Context, open bool) error {
	args := m.Called(ctx, open)
	return args.Error(0)
}
