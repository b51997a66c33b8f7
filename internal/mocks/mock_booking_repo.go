package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ekaraca/cinebook/internal/domain"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)

	return args.Error(0)
}

func (m *MockBookingRepo) Update(
	ctx context.Context,
	id int,
	update domain.BookingUpdate) (*domain.Booking, error) {

	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}
