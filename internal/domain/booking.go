package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          int
	MovieID     int
	MovieTitle  string
	TheaterID   int
	TheaterName string
	Showtime    string
	Seats       []BookingSeat
	TotalAmount decimal.Decimal
	BookingDate time.Time
	Status      BookingStatus
}

// BookingSeat is the durable snapshot of a seat at booking time. Seat maps are
// regenerated per request, so this snapshot is the only record of what was sold.
type BookingSeat struct {
	Row      string
	Number   int
	Category SeatCategory
	Price    decimal.Decimal
}

// NewBookingFromFlow turns a confirmed flow into a booking record. The flow
// must have reached the confirmation step with at least one seat selected, and
// the carried total must equal the sum of the per-seat prices.
func NewBookingFromFlow(flow *BookingFlow) (*Booking, error) {
	if flow.Step != StepConfirmation || flow.Showtime == "" {
		return nil, ErrMissingFlowState
	}

	if len(flow.Seats) == 0 {
		return nil, ErrEmptySelection
	}

	seats := make([]BookingSeat, len(flow.Seats))
	total := decimal.Zero

	for i, s := range flow.Seats {
		seats[i] = BookingSeat{
			Row:      s.Row,
			Number:   s.Number,
			Category: s.Category,
			Price:    s.Price,
		}
		total = total.Add(s.Price)
	}

	if !total.Equal(flow.Total) {
		return nil, ErrInconsistentTotal
	}

	return &Booking{
		MovieID:     flow.MovieID,
		MovieTitle:  flow.MovieTitle,
		TheaterID:   flow.TheaterID,
		TheaterName: flow.TheaterName,
		Showtime:    flow.Showtime,
		Seats:       seats,
		TotalAmount: total,
		BookingDate: time.Now(),
		Status:      BookingStatusConfirmed,
	}, nil
}

// ConsistentTotal reports whether TotalAmount equals the sum of the per-seat
// prices. Repositories reject bookings that fail this check at creation;
// nothing re-validates it afterwards.
func (b *Booking) ConsistentTotal() bool {
	total := decimal.Zero

	for _, s := range b.Seats {
		total = total.Add(s.Price)
	}

	return total.Equal(b.TotalAmount)
}

// BookingUpdate carries the mutable booking fields. Nil fields are left
// untouched.
type BookingUpdate struct {
	Showtime *string
	Status   *BookingStatus
}

type BookingRepository interface {
	GetAll(ctx context.Context) ([]*Booking, error)
	GetById(ctx context.Context, id int) (*Booking, error)
	Create(ctx context.Context, booking *Booking) error
	Update(ctx context.Context, id int, update BookingUpdate) (*Booking, error)
	Delete(ctx context.Context, id int) (*Booking, error)
}
