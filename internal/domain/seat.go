package domain

import "fmt"

type SeatCategory string

const (
	CategoryPremium SeatCategory = "Premium"
	CategoryGold    SeatCategory = "Gold"
	CategorySilver  SeatCategory = "Silver"
)

// Seat is one position in a generated seat map. Seat maps are derived data:
// they are regenerated per request from the theater layout and never stored.
type Seat struct {
	TheaterID int
	Row       string
	Number    int
	Category  SeatCategory
	Booked    bool
	Available bool
}

// Key identifies a seat within its theater by (row, number).
func (s Seat) Key() string {
	return fmt.Sprintf("%s-%d", s.Row, s.Number)
}

func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}
