package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ekaraca/cinebook/internal/domain"
)

type MemoryMovieRepository struct {
	mu      sync.RWMutex
	movies  map[int]*domain.Movie
	latency time.Duration
}

func NewMemoryMovieRepository(latency time.Duration) (*MemoryMovieRepository, error) {
	movies, err := loadMovieSeed()
	if err != nil {
		return nil, err
	}

	return &MemoryMovieRepository{
		movies:  movies,
		latency: latency,
	}, nil
}

func (m *MemoryMovieRepository) GetAll(
	ctx context.Context,
	filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {

	if err := simulateLatency(ctx, m.latency); err != nil {
		return nil, nil, err
	}

	m.mu.RLock()

	matched := make([]*domain.Movie, 0, len(m.movies))
	term := strings.ToLower(filters.Term)

	for _, movie := range m.movies {
		if term != "" &&
			!strings.Contains(strings.ToLower(movie.Title), term) &&
			!strings.Contains(strings.ToLower(movie.Description), term) {
			continue
		}

		matched = append(matched, movie)
	}

	m.mu.RUnlock()

	sortMovies(matched, filters)

	totalRecords := len(matched)
	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	start := filters.Offset()
	if start > totalRecords {
		start = totalRecords
	}

	end := start + filters.Limit()
	if end > totalRecords {
		end = totalRecords
	}

	page := make([]*domain.Movie, 0, end-start)
	for _, movie := range matched[start:end] {
		page = append(page, copyMovie(movie))
	}

	return page, metadata, nil
}

func (m *MemoryMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	if err := simulateLatency(ctx, m.latency); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	movie, ok := m.movies[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return copyMovie(movie), nil
}

func sortMovies(movies []*domain.Movie, filters domain.MovieFilters) {
	column := filters.SortColumn()

	less := func(a, b *domain.Movie) bool {
		switch column {
		case "title":
			return a.Title < b.Title
		case "rating":
			return a.Rating.LessThan(b.Rating)
		case "releaseDate":
			return a.ReleaseDate.Before(b.ReleaseDate)
		default:
			return a.ID < b.ID
		}
	}

	sort.SliceStable(movies, func(i, j int) bool {
		if filters.SortDescending() {
			return less(movies[j], movies[i])
		}

		return less(movies[i], movies[j])
	})
}

func copyMovie(m *domain.Movie) *domain.Movie {
	c := *m
	c.Genres = append([]string(nil), m.Genres...)
	c.CastMembers = append([]string(nil), m.CastMembers...)

	return &c
}
