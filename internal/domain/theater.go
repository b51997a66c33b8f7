package domain

import "context"

const (
	AmenityIMAX       = "IMAX"
	Amenity4DX        = "4DX"
	AmenityDolbyAtmos = "Dolby Atmos"
)

type Theater struct {
	ID        int
	Name      string
	Location  string
	Amenities []string
	Layout    SeatLayout
	Showtimes []string
}

// SeatLayout describes the auditorium grid a seat map is generated from.
type SeatLayout struct {
	Rows        []string
	SeatsPerRow int
}

func (t *Theater) HasShowtime(showtime string) bool {
	for _, s := range t.Showtimes {
		if s == showtime {
			return true
		}
	}

	return false
}

func (t *Theater) HasAmenity(amenity string) bool {
	for _, a := range t.Amenities {
		if a == amenity {
			return true
		}
	}

	return false
}

type TheaterRepository interface {
	GetAll(ctx context.Context) ([]*Theater, error)
	GetById(ctx context.Context, id int) (*Theater, error)
}
