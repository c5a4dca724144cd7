package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockDataWiper is a testify mock for usecase.DataWiper
type MockDataWiper struct {
	mock.Mock
}

// NewMockDataWiper creates a MockDataWiper that asserts its expectations on cleanup
func NewMockDataWiper(t testingT) *MockDataWiper {
	m := &MockDataWiper{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDataWiper) ClearData(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
