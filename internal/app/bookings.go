package app

import (
	"errors"
	"net/http"

	"github.com/ekaraca/cinebook/api"
	"github.com/ekaraca/cinebook/internal/domain"
)

func (app *application) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := app.bookingRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: toApiBookings(bookings),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetBookingById(w http.ResponseWriter, r *http.Request) {
	bookingId, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetById(r.Context(), bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.BookingResponse{
		Booking: toApiBooking(booking),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingId, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateBookingRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	update := domain.BookingUpdate{
		Showtime: input.Showtime,
	}
	if input.Status != nil {
		status := domain.BookingStatus(*input.Status)
		update.Status = &status
	}

	booking, err := app.bookingRepo.Update(r.Context(), bookingId, update)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.BookingResponse{
		Booking: toApiBooking(booking),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBooking deletes the booking and returns its prior snapshot.
func (app *application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingId, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.Delete(r.Context(), bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.contextGetLogger(r).Info("booking cancelled", "booking_id", booking.ID)

	resp := api.BookingResponse{
		Booking: toApiBooking(booking),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toApiBooking(booking *domain.Booking) api.Booking {
	seats := make([]api.BookingSeat, len(booking.Seats))

	for i, seat := range booking.Seats {
		seats[i] = api.BookingSeat{
			Row:      seat.Row,
			Number:   seat.Number,
			Category: string(seat.Category),
			Price:    seat.Price,
		}
	}

	return api.Booking{
		Id:          booking.ID,
		MovieId:     booking.MovieID,
		MovieTitle:  booking.MovieTitle,
		TheaterId:   booking.TheaterID,
		TheaterName: booking.TheaterName,
		Showtime:    booking.Showtime,
		Seats:       seats,
		TotalAmount: booking.TotalAmount,
		BookingDate: booking.BookingDate,
		Status:      string(booking.Status),
	}
}

func toApiBookings(bookings []*domain.Booking) []api.Booking {
	apiBookings := make([]api.Booking, len(bookings))

	for i, booking := range bookings {
		apiBookings[i] = toApiBooking(booking)
	}

	return apiBookings
}
