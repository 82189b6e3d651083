package mocks

import (
	"context"

	"devapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) Export(ctx context.Context) (*service.SnapshotResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SnapshotResult), args.Error(1)
}
