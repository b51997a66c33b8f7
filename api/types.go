// Package api holds the request and response types of the HTTP interface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovieStatus string

const (
	NowShowing MovieStatus = "NOW_SHOWING"
	ComingSoon MovieStatus = "COMING_SOON"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
	// Redirect names a safe path the client should return to, set on
	// missing-flow-state errors.
	Redirect string `json:"redirect,omitempty"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type GetMoviesParams struct {
	Term     *string `validate:"omitempty,max=100"`
	Page     *int    `validate:"omitempty,gt=0"`
	PageSize *int    `validate:"omitempty,gt=0,max=50"`
	Sort     *string `validate:"omitempty,oneof=id title rating releaseDate -id -title -rating -releaseDate"`
}

type MovieSummary struct {
	Id          int             `json:"id"`
	Title       string          `json:"title"`
	PosterUrl   string          `json:"posterUrl"`
	Rating      decimal.Decimal `json:"rating"`
	Genres      []string        `json:"genres"`
	Duration    int             `json:"duration"`
	ReleaseDate time.Time       `json:"releaseDate"`
	Status      MovieStatus     `json:"status"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type MovieResponse struct {
	Id          int             `json:"id"`
	Title       string          `json:"title"`
	Synopsis    string          `json:"synopsis"`
	Genres      []string        `json:"genres"`
	Language    string          `json:"language"`
	ReleaseDate time.Time       `json:"releaseDate"`
	Duration    int             `json:"duration"`
	PosterUrl   string          `json:"posterUrl"`
	Director    string          `json:"director"`
	CastMembers []string        `json:"cast"`
	Rating      decimal.Decimal `json:"rating"`
}

type Theater struct {
	Id        int      `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Amenities []string `json:"amenities"`
}

type TheaterListResponse struct {
	Theaters []Theater `json:"theaters"`
}

type TheaterShowtime struct {
	Time           string          `json:"time"`
	Price          decimal.Decimal `json:"price"`
	AvailableSeats int             `json:"availableSeats"`
}

type MovieTheater struct {
	Theater
	Showtimes []TheaterShowtime `json:"showtimes"`
}

type MovieTheatersResponse struct {
	MovieId  int            `json:"movieId"`
	Theaters []MovieTheater `json:"theaters"`
}

type Seat struct {
	Row       string          `json:"row"`
	Number    int             `json:"number"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Booked    bool            `json:"booked"`
	Available bool            `json:"available"`
}

type SeatRow struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	TheaterId   int       `json:"theaterId"`
	TheaterName string    `json:"theaterName"`
	Showtime    string    `json:"showtime,omitempty"`
	SeatRows    []SeatRow `json:"seatRows"`
}

type StartFlowRequest struct {
	MovieId int `json:"movieId" validate:"required,gt=0"`
}

type SelectShowtimeRequest struct {
	TheaterId int    `json:"theaterId" validate:"required,gt=0"`
	Showtime  string `json:"showtime" validate:"required,showtime"`
}

type ToggleSeatRequest struct {
	Row    string `json:"row" validate:"required,seat_row"`
	Number int    `json:"number" validate:"required,gt=0"`
}

type ConfirmFlowRequest struct {
	// Email optionally receives the booking confirmation.
	Email string `json:"email" validate:"omitempty,email"`
}

type FlowSeat struct {
	Row      string          `json:"row"`
	Number   int             `json:"number"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

type Flow struct {
	Id            string          `json:"id"`
	Step          string          `json:"step"`
	MovieId       int             `json:"movieId"`
	MovieTitle    string          `json:"movieTitle"`
	TheaterId     int             `json:"theaterId,omitempty"`
	TheaterName   string          `json:"theaterName,omitempty"`
	Showtime      string          `json:"showtime,omitempty"`
	ShowtimePrice decimal.Decimal `json:"showtimePrice"`
	Seats         []FlowSeat      `json:"seats"`
	Total         decimal.Decimal `json:"total"`
	MaxSeats      int             `json:"maxSeats"`
}

type FlowResponse struct {
	Flow Flow `json:"flow"`
}

type BookingSeat struct {
	Row      string          `json:"row"`
	Number   int             `json:"number"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

type Booking struct {
	Id          int             `json:"id"`
	MovieId     int             `json:"movieId"`
	MovieTitle  string          `json:"movieTitle"`
	TheaterId   int             `json:"theaterId"`
	TheaterName string          `json:"theaterName"`
	Showtime    string          `json:"showtime"`
	Seats       []BookingSeat   `json:"seats"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	BookingDate time.Time       `json:"bookingDate"`
	Status      string          `json:"status"`
}

type BookingResponse struct {
	Booking Booking `json:"booking"`
}

type BookingListResponse struct {
	Bookings []Booking `json:"bookings"`
}

type UpdateBookingRequest struct {
	Showtime *string `json:"showtime" validate:"omitempty,showtime"`
	Status   *string `json:"status" validate:"omitempty,oneof=confirmed cancelled"`
}
