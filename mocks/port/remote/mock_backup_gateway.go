package remote

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	remoteport "github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
	"github.com/stretchr/testify/mock"
)

// MockBackupGateway is a testify mock for remote.BackupGateway
type MockBackupGateway struct {
	mock.Mock
}

// NewMockBackupGateway creates a MockBackupGateway that asserts its expectations on cleanup
func NewMockBackupGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBackupGateway {
	m := &MockBackupGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Factory returns a GatewayFactory that always hands out m
func (m *MockBackupGateway) Factory() remoteport.GatewayFactory {
	return func(token, documentID string) remoteport.BackupGateway {
		return m
	}
}

func (m *MockBackupGateway) DocumentID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockBackupGateway) SaveDocument(ctx context.Context, snapshot *entity.Snapshot) (string, error) {
	args := m.Called(ctx, snapshot)
	return args.String(0), args.Error(1)
}

func (m *MockBackupGateway) LoadDocument(ctx context.Context) (*entity.Snapshot, error) {
	args := m.Called(ctx)
	snapshot, _ := args.Get(0).(*entity.Snapshot)
	return snapshot, args.Error(1)
}

func (m *MockBackupGateway) DocumentExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackupGateway) DeleteDocument(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackupGateway) ListDocuments(ctx context.Context) ([]remoteport.DocumentSummary, error) {
	args := m.Called(ctx)
	docs, _ := args.Get(0).([]remoteport.DocumentSummary)
	return docs, args.Error(1)
}

func (m *MockBackupGateway) ValidateToken(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockBackupGateway) UserInfo(ctx context.Context) (*remoteport.RemoteUser, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*remoteport.RemoteUser)
	return user, args.Error(1)
}
