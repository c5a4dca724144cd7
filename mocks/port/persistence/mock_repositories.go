package persistence

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockDataRepository is a testify mock for persistence.DataRepository
type MockDataRepository struct {
	mock.Mock
}

// NewMockDataRepository creates a MockDataRepository that asserts its expectations on cleanup
func NewMockDataRepository(t testingT) *MockDataRepository {
	m := &MockDataRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDataRepository) Load(ctx context.Context) (*entity.DataState, error) {
	args := m.Called(ctx)
	state, _ := args.Get(0).(*entity.DataState)
	return state, args.Error(1)
}

func (m *MockDataRepository) Save(ctx context.Context, state *entity.DataState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockDataRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAccountRepository is a testify mock for persistence.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a MockAccountRepository that asserts its expectations on cleanup
func NewMockAccountRepository(t testingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Load(ctx context.Context) (*entity.Account, error) {
	args := m.Called(ctx)
	account, _ := args.Get(0).(*entity.Account)
	return account, args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPreferencesRepository is a testify mock for persistence.PreferencesRepository
type MockPreferencesRepository struct {
	mock.Mock
}

// NewMockPreferencesRepository creates a MockPreferencesRepository that asserts its expectations on cleanup
func NewMockPreferencesRepository(t testingT) *MockPreferencesRepository {
	m := &MockPreferencesRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPreferencesRepository) Load(ctx context.Context) (entity.UIPreferences, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.UIPreferences), args.Error(1)
}

func (m *MockPreferencesRepository) Save(ctx context.Context, prefs entity.UIPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

func (m *MockPreferencesRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
