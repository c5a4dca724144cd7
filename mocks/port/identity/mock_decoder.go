package identity

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockDecoder is a testify mock for identity.Decoder
type MockDecoder struct {
	mock.Mock
}

// NewMockDecoder creates a MockDecoder that asserts its expectations on cleanup
func NewMockDecoder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDecoder {
	m := &MockDecoder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDecoder) Decode(ctx context.Context, token string) (*entity.FederatedIdentity, error) {
	args := m.Called(ctx, token)
	identity, _ := args.Get(0).(*entity.FederatedIdentity)
	return identity, args.Error(1)
}
