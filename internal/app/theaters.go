package app

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/ekaraca/cinebook/api"
	"github.com/ekaraca/cinebook/internal/domain"
)

func (app *application) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := app.theaterRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TheaterListResponse{
		Theaters: toApiTheaters(theaters),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetTheatersByMovie lists every theater screening the movie, with each
// showtime enriched by its derived price and a per-request available-seat
// count. The count is intentionally not stable across calls: there is no
// durable seat inventory to read it from.
func (app *application) GetTheatersByMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.movieRepo.GetById(r.Context(), movieId); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	theaters, err := app.theaterRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movieTheaters := make([]api.MovieTheater, 0, len(theaters))

	for _, theater := range theaters {
		showtimes := make([]api.TheaterShowtime, 0, len(theater.Showtimes))

		for _, showtime := range theater.Showtimes {
			price, err := domain.ShowtimePrice(showtime, theater.Amenities)
			if err != nil {
				logger.Warn("skipping malformed showtime", "theater_id", theater.ID, "showtime", showtime)
				continue
			}

			showtimes = append(showtimes, api.TheaterShowtime{
				Time:           showtime,
				Price:          price,
				AvailableSeats: randomAvailableSeats(theater),
			})
		}

		movieTheaters = append(movieTheaters, api.MovieTheater{
			Theater:   toApiTheater(theater),
			Showtimes: showtimes,
		})
	}

	resp := api.MovieTheatersResponse{
		MovieId:  movieId,
		Theaters: movieTheaters,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func randomAvailableSeats(theater *domain.Theater) int {
	capacity := len(theater.Layout.Rows) * theater.Layout.SeatsPerRow
	if capacity < 1 {
		return 0
	}

	return rand.Intn(capacity) + 1
}

func toApiTheater(theater *domain.Theater) api.Theater {
	return api.Theater{
		Id:        theater.ID,
		Name:      theater.Name,
		Location:  theater.Location,
		Amenities: theater.Amenities,
	}
}

func toApiTheaters(theaters []*domain.Theater) []api.Theater {
	apiTheaters := make([]api.Theater, len(theaters))

	for i, theater := range theaters {
		apiTheaters[i] = toApiTheater(theater)
	}

	return apiTheaters
}
