package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ekaraca/cinebook/internal/domain"
)

type MockMovieRepo struct {
	mock.Mock
}

func (m *MockMovieRepo) GetAll(
	ctx context.Context,
	filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {

	args := m.Called(ctx, filters)

	var movies []*domain.Movie
	if args.Get(0) != nil {
		movies = args.Get(0).([]*domain.Movie)
	}

	var metadata *domain.Metadata
	if args.Get(1) != nil {
		metadata = args.Get(1).(*domain.Metadata)
	}

	return movies, metadata, args.Error(2)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Movie), args.Error(1)
}
