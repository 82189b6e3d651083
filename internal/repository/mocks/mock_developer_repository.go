package mocks

import (
	"context"

	"devapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDeveloperRepository struct {
	mock.Mock
}

func (m *MockDeveloperRepository) Create(ctx context.Context, dev *model.Developer) (*model.Developer, error) {
	args := m.Called(ctx, dev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Developer), args.Error(1)
}

func (m *MockDeveloperRepository) FindByID(ctx context.Context, id int64) (*model.Developer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Developer), args.Error(1)
}

func (m *MockDeveloperRepository) Update(ctx context.Context, dev *model.Developer) (*model.Developer, error) {
	args := m.Called(ctx, dev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Developer), args.Error(1)
}

func (m *MockDeveloperRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeveloperRepository) List(ctx context.Context) ([]model.Developer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Developer), args.Error(1)
}
