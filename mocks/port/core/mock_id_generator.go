package core

import (
	"fmt"
	"sync/atomic"

	"github.com/stretchr/testify/mock"
)

// MockIDGenerator is a testify mock for coreport.IDGenerator
type MockIDGenerator struct {
	mock.Mock
}

// NewMockIDGenerator creates a MockIDGenerator that asserts its expectations on cleanup
func NewMockIDGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIDGenerator {
	m := &MockIDGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewSequentialIDGenerator returns a mock producing prefix-1, prefix-2, ...
func NewSequentialIDGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}, prefix string) *MockIDGenerator {
	m := NewMockIDGenerator(t)
	var n atomic.Int64
	m.On("NewID").Return(func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}).Maybe()
	return m
}

func (m *MockIDGenerator) NewID() string {
	args := m.Called()
	if fn, ok := args.Get(0).(func() string); ok {
		return fn()
	}
	return args.String(0)
}
