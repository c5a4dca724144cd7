package usecase

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDataUseCase is a testify mock for usecase.DataUseCase
type MockDataUseCase struct {
	mock.Mock
}

// NewMockDataUseCase creates a MockDataUseCase that asserts its expectations on cleanup
func NewMockDataUseCase(t testingT) *MockDataUseCase {
	m := &MockDataUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDataUseCase) AddCard(ctx context.Context, input usecase.CardInput) (*entity.Card, error) {
	args := m.Called(ctx, input)
	card, _ := args.Get(0).(*entity.Card)
	return card, args.Error(1)
}

func (m *MockDataUseCase) UpdateCard(ctx context.Context, id string, update entity.CardUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockDataUseCase) DeleteCard(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDataUseCase) AddTransaction(ctx context.Context, cardID string, input usecase.TransactionInput) (*entity.Transaction, error) {
	args := m.Called(ctx, cardID, input)
	tx, _ := args.Get(0).(*entity.Transaction)
	return tx, args.Error(1)
}

func (m *MockDataUseCase) UpdateTransaction(ctx context.Context, id string, update entity.TransactionUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockDataUseCase) DeleteTransaction(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDataUseCase) CalculateCardBalance(cardID string) decimal.Decimal {
	args := m.Called(cardID)
	return args.Get(0).(decimal.Decimal)
}

func (m *MockDataUseCase) GetTotalBalance() decimal.Decimal {
	args := m.Called()
	return args.Get(0).(decimal.Decimal)
}

func (m *MockDataUseCase) GetTransactionsByCard(cardID string) []entity.Transaction {
	args := m.Called(cardID)
	txs, _ := args.Get(0).([]entity.Transaction)
	return txs
}

func (m *MockDataUseCase) GetRecentTransactions(limit int) []entity.Transaction {
	args := m.Called(limit)
	txs, _ := args.Get(0).([]entity.Transaction)
	return txs
}

func (m *MockDataUseCase) GetCardByID(id string) (*entity.Card, bool) {
	args := m.Called(id)
	card, _ := args.Get(0).(*entity.Card)
	return card, args.Bool(1)
}

func (m *MockDataUseCase) Cards() []entity.Card {
	args := m.Called()
	cards, _ := args.Get(0).([]entity.Card)
	return cards
}

func (m *MockDataUseCase) Transactions() []entity.Transaction {
	args := m.Called()
	txs, _ := args.Get(0).([]entity.Transaction)
	return txs
}

func (m *MockDataUseCase) Settings() entity.Settings {
	args := m.Called()
	return args.Get(0).(entity.Settings)
}

func (m *MockDataUseCase) UpdateSettings(ctx context.Context, update entity.SettingsUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockDataUseCase) SyncToCloud(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDataUseCase) SyncFromCloud(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDataUseCase) Status() usecase.StatusView {
	args := m.Called()
	return args.Get(0).(usecase.StatusView)
}

func (m *MockDataUseCase) ClearError() {
	m.Called()
}
