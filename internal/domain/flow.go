package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxSeatsPerBooking caps how many seats a single booking flow may select.
const MaxSeatsPerBooking = 8

type FlowStep string

const (
	StepShowtimeSelection FlowStep = "showtime_selection"
	StepSeatSelection     FlowStep = "seat_selection"
	StepConfirmation      FlowStep = "confirmation"
	StepCompleted         FlowStep = "completed"
)

// FlowSeat is the snapshot of a selected seat carried through the flow. The
// price is fixed at selection time from the category table.
type FlowSeat struct {
	Row      string
	Number   int
	Category SeatCategory
	Price    decimal.Decimal
}

// BookingFlow is the state bundle carried across the booking screens:
// showtime selection, then seat selection, then confirmation. Each step is
// gated on the previous selection being present, and discarding the flow at
// any point has no side effects. A flow lives in the caller's session only.
type BookingFlow struct {
	ID            string
	MovieID       int
	MovieTitle    string
	TheaterID     int
	TheaterName   string
	Showtime      string
	ShowtimePrice decimal.Decimal
	Seats         []FlowSeat
	Total         decimal.Decimal
	Step          FlowStep
	StartedAt     time.Time
}

func NewBookingFlow(movie *Movie) *BookingFlow {
	return &BookingFlow{
		ID:         uuid.New().String(),
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		Step:       StepShowtimeSelection,
		StartedAt:  time.Now(),
	}
}

// SelectShowtime records the chosen (theater, showtime) pair and advances the
// flow to seat selection. Re-selecting while the flow is in progress is
// allowed and clears any seats chosen for the previous showtime.
func (f *BookingFlow) SelectShowtime(theater *Theater, showtime string) error {
	if f.Step == StepCompleted {
		return ErrMissingFlowState
	}

	if !theater.HasShowtime(showtime) {
		return ErrUnknownShowtime
	}

	price, err := ShowtimePrice(showtime, theater.Amenities)
	if err != nil {
		return err
	}

	f.TheaterID = theater.ID
	f.TheaterName = theater.Name
	f.Showtime = showtime
	f.ShowtimePrice = price
	f.Seats = nil
	f.Total = decimal.Zero
	f.Step = StepSeatSelection

	return nil
}

// ToggleSeat adds the seat to the selection, or removes it if it is already
// selected. Selecting a booked or unavailable seat, or a ninth seat, is
// rejected and leaves the selection unchanged. It reports whether the seat
// ended up selected.
func (f *BookingFlow) ToggleSeat(seat Seat) (bool, error) {
	if f.Step != StepSeatSelection && f.Step != StepConfirmation {
		return false, ErrMissingFlowState
	}

	key := seat.Key()

	for i, s := range f.Seats {
		if flowSeatKey(s) == key {
			f.Seats = append(f.Seats[:i], f.Seats[i+1:]...)
			f.recomputeTotal()

			// An emptied selection can no longer confirm.
			if len(f.Seats) == 0 && f.Step == StepConfirmation {
				f.Step = StepSeatSelection
			}

			return false, nil
		}
	}

	if seat.Booked || !seat.Available {
		return false, ErrSeatUnavailable
	}

	if len(f.Seats) >= MaxSeatsPerBooking {
		return false, ErrSeatLimitExceeded
	}

	f.Seats = append(f.Seats, FlowSeat{
		Row:      seat.Row,
		Number:   seat.Number,
		Category: seat.Category,
		Price:    SeatPrice(seat.Category),
	})
	f.recomputeTotal()

	return true, nil
}

// Proceed advances the flow from seat selection to confirmation. It requires
// a non-empty selection.
func (f *BookingFlow) Proceed() error {
	if f.Step != StepSeatSelection {
		return ErrMissingFlowState
	}

	if len(f.Seats) == 0 {
		return ErrEmptySelection
	}

	f.Step = StepConfirmation

	return nil
}

func (f *BookingFlow) Complete() {
	f.Step = StepCompleted
}

func (f *BookingFlow) recomputeTotal() {
	total := decimal.Zero

	for _, s := range f.Seats {
		total = total.Add(s.Price)
	}

	f.Total = total
}

func flowSeatKey(s FlowSeat) string {
	return Seat{Row: s.Row, Number: s.Number}.Key()
}
