package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ekaraca/cinebook/api"
	"github.com/ekaraca/cinebook/internal/domain"
)

// StartFlowHandler opens a booking flow for a movie and stores it in the
// caller's session, replacing any flow already in progress.
func (app *application) StartFlowHandler(w http.ResponseWriter, r *http.Request) {
	var input api.StartFlowRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), input.MovieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	flow := domain.NewBookingFlow(movie)

	if err := app.putFlow(r, flow); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeFlow(w, r, http.StatusCreated, flow)
}

func (app *application) GetFlowHandler(w http.ResponseWriter, r *http.Request) {
	flow, err := app.getFlow(r)
	if err != nil {
		app.flowError(w, r, err)
		return
	}

	app.writeFlow(w, r, http.StatusOK, flow)
}

// CancelFlowHandler discards all in-progress selection state. Nothing has
// been persisted at this point, so cancelling has no side effects and is
// idempotent.
func (app *application) CancelFlowHandler(w http.ResponseWriter, r *http.Request) {
	app.clearFlow(r)

	w.WriteHeader(http.StatusNoContent)
}

// SelectShowtimeHandler records the chosen (theater, showtime) pair and moves
// the flow to seat selection.
func (app *application) SelectShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	flow, err := app.getFlow(r)
	if err != nil {
		app.flowError(w, r, err)
		return
	}

	var input api.SelectShowtimeRequest

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

	theater, err := app.theaterRepo.GetById(r.Context(), input.TheaterId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = flow.SelectShowtime(theater, input.Showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownShowtime):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrMissingFlowState):
			app.missingFlowStateResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if err := app.putFlow(r, flow); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeFlow(w, r, http.StatusOK, flow)
}

// ToggleSeatHandler selects or deselects one seat of the flow's screening.
// Rejections (booked or unavailable seat, seat cap reached) leave the
// selection unchanged.
func (app *application) ToggleSeatHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	flow, err := app.getFlow(r)
	if err != nil {
		app.flowError(w, r, err)
		return
	}

	if flow.Showtime == "" {
		app.missingFlowStateResponse(w, r)
		return
	}

	var input api.ToggleSeatRequest

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

	theater, err := app.theaterRepo.GetById(r.Context(), flow.TheaterID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	seats := app.seatMaps.Generate(theater, flow.Showtime)

	seat, ok := findSeat(seats, input.Row, input.Number)
	if !ok {
		app.badRequestResponse(w, r, fmt.Errorf("seat %s%d does not exist in this theater", input.Row, input.Number))
		return
	}

	selected, err := flow.ToggleSeat(seat)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatUnavailable), errors.Is(err, domain.ErrSeatLimitExceeded):
			logger.Warn("seat selection rejected", "seat", seat.Label(), "reason", err.Error())
			app.actionRejectedResponse(w, r, err)
		case errors.Is(err, domain.ErrMissingFlowState):
			app.missingFlowStateResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if err := app.putFlow(r, flow); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("seat toggled", "seat", seat.Label(), "selected", selected, "total", flow.Total)

	app.writeFlow(w, r, http.StatusOK, flow)
}

// ProceedFlowHandler advances the flow from seat selection to confirmation.
func (app *application) ProceedFlowHandler(w http.ResponseWriter, r *http.Request) {
	flow, err := app.getFlow(r)
	if err != nil {
		app.flowError(w, r, err)
		return
	}

	err = flow.Proceed()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptySelection):
			app.actionRejectedResponse(w, r, err)
		case errors.Is(err, domain.ErrMissingFlowState):
			app.missingFlowStateResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if err := app.putFlow(r, flow); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeFlow(w, r, http.StatusOK, flow)
}

// ConfirmFlowHandler turns the confirmed flow into a persisted booking. On
// repository failure the flow is left untouched in the session so the caller
// can retry without re-selecting seats.
func (app *application) ConfirmFlowHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	flow, err := app.getFlow(r)
	if err != nil {
		app.flowError(w, r, err)
		return
	}

	var input api.ConfirmFlowRequest

	if r.ContentLength > 0 {
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
	}

	booking, err := domain.NewBookingFromFlow(flow)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFlowState):
			app.missingFlowStateResponse(w, r)
		case errors.Is(err, domain.ErrEmptySelection):
			app.actionRejectedResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.bookingRepo.Create(r.Context(), booking)
	if err != nil {
		logger.Error("booking creation failed, flow kept for retry", "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	if input.Email != "" {
		app.sendBookingConfirmation(r, input.Email, booking)
	}

	flow.Complete()
	app.clearFlow(r)

	logger.Info("booking confirmed", "booking_id", booking.ID, "total", booking.TotalAmount)

	resp := api.BookingResponse{
		Booking: toApiBooking(booking),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) sendBookingConfirmation(r *http.Request, recipient string, booking *domain.Booking) {
	go func() {
		logger := app.contextGetLogger(r)

		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic occurred during sending confirmation mail", "panic", err)
			}
		}()

		labels := make([]string, len(booking.Seats))
		for i, seat := range booking.Seats {
			labels[i] = fmt.Sprintf("%s%d", seat.Row, seat.Number)
		}

		data := map[string]any{
			"bookingID":   booking.ID,
			"movieTitle":  booking.MovieTitle,
			"theaterName": booking.TheaterName,
			"showtime":    booking.Showtime,
			"seats":       strings.Join(labels, ", "),
			"totalAmount": booking.TotalAmount,
		}

		err := app.mailer.Send(recipient, "booking_confirmation.tmpl", data)
		if err != nil {
			logger.Error("failed to send confirmation email", "error", err)
		} else {
			logger.Info("confirmation email sent")
		}
	}()
}

func (app *application) flowError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFlowState):
		app.missingFlowStateResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) writeFlow(w http.ResponseWriter, r *http.Request, status int, flow *domain.BookingFlow) {
	resp := api.FlowResponse{
		Flow: toApiFlow(flow),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func findSeat(seats []domain.Seat, row string, number int) (domain.Seat, bool) {
	for _, seat := range seats {
		if seat.Row == row && seat.Number == number {
			return seat, true
		}
	}

	return domain.Seat{}, false
}

func toApiFlow(flow *domain.BookingFlow) api.Flow {
	seats := make([]api.FlowSeat, len(flow.Seats))

	for i, seat := range flow.Seats {
		seats[i] = api.FlowSeat{
			Row:      seat.Row,
			Number:   seat.Number,
			Category: string(seat.Category),
			Price:    seat.Price,
		}
	}

	return api.Flow{
		Id:            flow.ID,
		Step:          string(flow.Step),
		MovieId:       flow.MovieID,
		MovieTitle:    flow.MovieTitle,
		TheaterId:     flow.TheaterID,
		TheaterName:   flow.TheaterName,
		Showtime:      flow.Showtime,
		ShowtimePrice: flow.ShowtimePrice,
		Seats:         seats,
		Total:         flow.Total,
		MaxSeats:      domain.MaxSeatsPerBooking,
	}
}
