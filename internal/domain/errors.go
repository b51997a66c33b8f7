package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrUnknownShowtime   = errors.New("showtime is not scheduled at this theater")
	ErrSeatUnavailable   = errors.New("seat is already booked or unavailable")
	ErrSeatLimitExceeded = errors.New("maximum number of seats already selected")
	ErrEmptySelection    = errors.New("at least one seat must be selected")
	ErrMissingFlowState  = errors.New("booking flow state is missing or incomplete")
	ErrInconsistentTotal = errors.New("booking total does not match the sum of seat prices")
)
