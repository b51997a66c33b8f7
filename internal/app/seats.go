package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ekaraca/cinebook/api"
	"github.com/ekaraca/cinebook/internal/domain"
)

// GetSeatMapByTheater generates the seat map for a theater. When a showtime
// query parameter is given, the map is generated for that screening and is
// stable across requests; without it, each request draws a fresh layout seed.
func (app *application) GetSeatMapByTheater(w http.ResponseWriter, r *http.Request) {
	theaterId, err := app.readIDParam(r, "theaterId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime := r.URL.Query().Get("showtime")
	if showtime != "" {
		if _, err := time.Parse(domain.ShowtimeLayout, showtime); err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid showtime %q", showtime))
			return
		}
	} else {
		showtime = time.Now().Format(time.RFC3339Nano)
	}

	theater, err := app.theaterRepo.GetById(r.Context(), theaterId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats := app.seatMaps.Generate(theater, showtime)
	if len(seats) == 0 {
		app.contextGetLogger(r).Warn("theater has no seat layout", "theater_id", theaterId)
		app.notFoundResponse(w, r)
		return
	}

	resp := api.SeatMapResponse{
		TheaterId:   theater.ID,
		TheaterName: theater.Name,
		Showtime:    r.URL.Query().Get("showtime"),
		SeatRows:    toSeatRows(seats),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatRows(seats []domain.Seat) []api.SeatRow {
	// Seats are generated row by row, so a single pass groups them without
	// additional sorting.

	var seatRows []api.SeatRow
	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, v := range seats {
		if v.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: v.Row}
		}

		currentRow.Seats = append(currentRow.Seats, api.Seat{
			Row:       v.Row,
			Number:    v.Number,
			Category:  string(v.Category),
			Price:     domain.SeatPrice(v.Category),
			Booked:    v.Booked,
			Available: v.Available,
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}
