package mocks

import (
	"context"

	"devapi/internal/model"
	"devapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDeveloperService struct {
	mock.Mock
}

func (m *MockDeveloperService) List(ctx context.Context) ([]model.Developer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Developer), args.Error(1)
}

func (m *MockDeveloperService) Create(ctx context.Context, in service.DeveloperInput) (*model.Developer, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Developer), args.Error(1)
}

func (m *MockDeveloperService) Get(ctx context.Context, id int64) (*model.Developer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Developer), args.Error(1)
}

func (m *MockDeveloperService) Update(ctx context.Context, id int64, in service.DeveloperInput) (*model.Developer, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Developer), args.Error(1)
}

func (m *MockDeveloperService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ service.DeveloperService = (*MockDeveloperService)(nil)
