package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ekaraca/cinebook/internal/domain"
)

type MemoryTheaterRepository struct {
	mu       sync.RWMutex
	theaters map[int]*domain.Theater
	latency  time.Duration
}

func NewMemoryTheaterRepository(latency time.Duration) (*MemoryTheaterRepository, error) {
	theaters, err := loadTheaterSeed()
	if err != nil {
		return nil, err
	}

	return &MemoryTheaterRepository{
		theaters: theaters,
		latency:  latency,
	}, nil
}

func (m *MemoryTheaterRepository) GetAll(ctx context.Context) ([]*domain.Theater, error) {
	if err := simulateLatency(ctx, m.latency); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	theaters := make([]*domain.Theater, 0, len(m.theaters))
	for _, theater := range m.theaters {
		theaters = append(theaters, copyTheater(theater))
	}

	sort.Slice(theaters, func(i, j int) bool { return theaters[i].ID < theaters[j].ID })

	return theaters, nil
}

func (m *MemoryTheaterRepository) GetById(ctx context.Context, id int) (*domain.Theater, error) {
	if err := simulateLatency(ctx, m.latency); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	theater, ok := m.theaters[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return copyTheater(theater), nil
}

func copyTheater(t *domain.Theater) *domain.Theater {
	c := *t
	c.Amenities = append([]string(nil), t.Amenities...)
	c.Showtimes = append([]string(nil), t.Showtimes...)
	c.Layout.Rows = append([]string(nil), t.Layout.Rows...)

	return &c
}
