package repository

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ekaraca/cinebook/internal/domain"
	"github.com/shopspring/decimal"
)

//go:embed seed/movies.json seed/theaters.json
var seedFS embed.FS

const seedDateLayout = "2006-01-02"

type movieSeed struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Language    string   `json:"language"`
	ReleaseDate string   `json:"releaseDate"`
	Duration    int      `json:"duration"`
	PosterUrl   string   `json:"posterUrl"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
	Rating      float64  `json:"rating"`
}

type theaterSeed struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Amenities  []string `json:"amenities"`
	SeatLayout struct {
		Rows        []string `json:"rows"`
		SeatsPerRow int      `json:"seatsPerRow"`
	} `json:"seatLayout"`
	Showtimes []string `json:"showtimes"`
}

func loadMovieSeed() (map[int]*domain.Movie, error) {
	data, err := seedFS.ReadFile("seed/movies.json")
	if err != nil {
		return nil, err
	}

	var seeds []movieSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("decoding movie seed: %w", err)
	}

	movies := make(map[int]*domain.Movie, len(seeds))

	for _, s := range seeds {
		releaseDate, err := time.Parse(seedDateLayout, s.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("movie %d: invalid release date %q: %w", s.ID, s.ReleaseDate, err)
		}

		movies[s.ID] = &domain.Movie{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Genres:      s.Genres,
			Language:    s.Language,
			ReleaseDate: releaseDate,
			Duration:    s.Duration,
			PosterUrl:   s.PosterUrl,
			Director:    s.Director,
			CastMembers: s.Cast,
			Rating:      decimal.NewFromFloat(s.Rating),
		}
	}

	return movies, nil
}

func loadTheaterSeed() (map[int]*domain.Theater, error) {
	data, err := seedFS.ReadFile("seed/theaters.json")
	if err != nil {
		return nil, err
	}

	var seeds []theaterSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("decoding theater seed: %w", err)
	}

	theaters := make(map[int]*domain.Theater, len(seeds))

	for _, s := range seeds {
		for _, showtime := range s.Showtimes {
			if _, err := time.Parse(domain.ShowtimeLayout, showtime); err != nil {
				return nil, fmt.Errorf("theater %d: invalid showtime %q: %w", s.ID, showtime, err)
			}
		}

		theaters[s.ID] = &domain.Theater{
			ID:        s.ID,
			Name:      s.Name,
			Location:  s.Location,
			Amenities: s.Amenities,
			Layout: domain.SeatLayout{
				Rows:        s.SeatLayout.Rows,
				SeatsPerRow: s.SeatLayout.SeatsPerRow,
			},
			Showtimes: s.Showtimes,
		}
	}

	return theaters, nil
}
