// Package seatmap derives seat maps from theater layouts. There is no durable
// seat inventory: every map is generated on demand, with availability drawn
// from a PRNG seeded by (theater, showtime) so repeated requests for the same
// screening see the same map within a process.
package seatmap

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/ekaraca/cinebook/internal/domain"
)

type Config struct {
	// BookedRate is the probability a seat is already sold.
	BookedRate float64
	// MaintenanceRate is the probability a seat is out of service,
	// independent of its booked state.
	MaintenanceRate float64
	// GoldPromotionRate is the chance a center seat outside the regular
	// Gold block is still sold as Gold.
	GoldPromotionRate float64
}

func DefaultConfig() Config {
	return Config{
		BookedRate:        0.3,
		MaintenanceRate:   0.05,
		GoldPromotionRate: 0.1,
	}
}

type Generator struct {
	cfg Config
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate lays out one seat per (row, position) pair of the theater's grid.
// The first two rows are Premium within the center band, the next ~60% of
// rows are Gold within the same band, and everything else is Silver apart
// from occasional Gold promotions of later center seats.
func (g *Generator) Generate(theater *domain.Theater, showtime string) []domain.Seat {
	rows := theater.Layout.Rows
	perRow := theater.Layout.SeatsPerRow

	if len(rows) == 0 || perRow <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed(theater.ID, showtime)))

	// Center band covers the middle 50% of each row.
	bandStart := perRow/4 + 1
	bandEnd := perRow - perRow/4

	premiumRows := min(2, len(rows))
	goldRows := (len(rows)*6 + 9) / 10

	seats := make([]domain.Seat, 0, len(rows)*perRow)

	for i, row := range rows {
		for number := 1; number <= perRow; number++ {
			center := number >= bandStart && number <= bandEnd

			category := domain.CategorySilver
			switch {
			case center && i < premiumRows:
				category = domain.CategoryPremium
			case center && i < premiumRows+goldRows:
				category = domain.CategoryGold
			case center && rng.Float64() < g.cfg.GoldPromotionRate:
				category = domain.CategoryGold
			}

			booked := rng.Float64() < g.cfg.BookedRate
			maintenance := rng.Float64() < g.cfg.MaintenanceRate

			seats = append(seats, domain.Seat{
				TheaterID: theater.ID,
				Row:       row,
				Number:    number,
				Category:  category,
				Booked:    booked,
				Available: !booked && !maintenance,
			})
		}
	}

	return seats
}

func seed(theaterID int, showtime string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%s", theaterID, showtime)

	return int64(h.Sum64())
}
