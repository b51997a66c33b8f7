package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ekaraca/cinebook/internal/domain"
)

type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[int]*domain.Booking
	latency  time.Duration
}

func NewMemoryBookingRepository(latency time.Duration) *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings: make(map[int]*domain.Booking),
		latency:  latency,
	}
}

func (m *MemoryBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	if err := simulateLatency(ctx, m.latency); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	bookings := make([]*domain.Booking, 0, len(m.bookings))
	for _, booking := range m.bookings {
		bookings = append(bookings, copyBooking(booking))
	}

	// Newest first, matching how a booking history screen lists them.
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID > bookings[j].ID })

	return bookings, nil
}

func (m *MemoryBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	if err := simulateLatency(ctx, m.latency); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	booking, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	return copyBooking(booking), nil
}

// Create assigns the next identifier (highest existing ID plus one) and stores
// the booking. Bookings whose total does not equal the sum of their seat
// prices are rejected; this is the only point the invariant is enforced.
func (m *MemoryBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if err := simulateLatency(ctx, m.latency); err != nil {
		return err
	}

	if !booking.ConsistentTotal() {
		return domain.ErrInconsistentTotal
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	maxID := 0
	for id := range m.bookings {
		if id > maxID {
			maxID = id
		}
	}

	booking.ID = maxID + 1
	if booking.BookingDate.IsZero() {
		booking.BookingDate = time.Now()
	}

	m.bookings[booking.ID] = copyBooking(booking)

	return nil
}

func (m *MemoryBookingRepository) Update(
	ctx context.Context,
	id int,
	update domain.BookingUpdate) (*domain.Booking, error) {

	if err := simulateLatency(ctx, m.latency); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	if update.Showtime != nil {
		booking.Showtime = *update.Showtime
	}
	if update.Status != nil {
		booking.Status = *update.Status
	}

	return copyBooking(booking), nil
}

// Delete removes the booking and returns its prior snapshot.
func (m *MemoryBookingRepository) Delete(ctx context.Context, id int) (*domain.Booking, error) {
	if err := simulateLatency(ctx, m.latency); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	delete(m.bookings, id)

	return copyBooking(booking), nil
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	c.Seats = append([]domain.BookingSeat(nil), b.Seats...)

	return &c
}
