package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ekaraca/cinebook/internal/domain"
)

type MockTheaterRepo struct {
	mock.Mock
}

func (m *MockTheaterRepo) GetAll(ctx context.Context) ([]*domain.Theater, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Theater), args.Error(1)
}

func (m *MockTheaterRepo) GetById(ctx context.Context, id int) (*domain.Theater, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Theater), args.Error(1)
}
