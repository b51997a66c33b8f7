package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ekaraca/cinebook/api"
	"github.com/ekaraca/cinebook/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
)

func (app *application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params, err := parseGetMoviesParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovieById(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := toMovieResponse(movie)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func parseGetMoviesParams(r *http.Request) (api.GetMoviesParams, error) {
	params := api.GetMoviesParams{}
	query := r.URL.Query()

	if term := query.Get("term"); term != "" {
		params.Term = &term
	}
	if page := query.Get("page"); page != "" {
		pageNum, err := strconv.Atoi(page)
		if err != nil {
			return params, fmt.Errorf("invalid page parameter %q", page)
		}
		params.Page = &pageNum
	}
	if pageSize := query.Get("pageSize"); pageSize != "" {
		pageSizeNum, err := strconv.Atoi(pageSize)
		if err != nil {
			return params, fmt.Errorf("invalid pageSize parameter %q", pageSize)
		}
		params.PageSize = &pageSizeNum
	}
	if sort := query.Get("sort"); sort != "" {
		params.Sort = &sort
	}

	return params, nil
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     DefaultSort,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	return filters
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))
	today := time.Now().Truncate(24 * time.Hour)

	for i, movie := range movies {
		summary := api.MovieSummary{
			Id:          movie.ID,
			Title:       movie.Title,
			PosterUrl:   movie.PosterUrl,
			Rating:      movie.Rating,
			Genres:      movie.Genres,
			Duration:    movie.Duration,
			ReleaseDate: movie.ReleaseDate,
		}

		if movie.ReleaseDate.After(today) {
			summary.Status = api.ComingSoon
		} else {
			summary.Status = api.NowShowing
		}

		summaries[i] = summary
	}

	return summaries
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Synopsis:    movie.Description,
		Genres:      movie.Genres,
		Language:    movie.Language,
		ReleaseDate: movie.ReleaseDate,
		Duration:    movie.Duration,
		PosterUrl:   movie.PosterUrl,
		Director:    movie.Director,
		CastMembers: movie.CastMembers,
		Rating:      movie.Rating,
	}
}

func toApiMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
