package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ShowtimeLayout is the clock format theaters schedule screenings with, e.g. "7:00 PM".
const ShowtimeLayout = "3:04 PM"

var seatPrices = map[SeatCategory]decimal.Decimal{
	CategoryPremium: decimal.NewFromInt(25),
	CategoryGold:    decimal.NewFromInt(18),
	CategorySilver:  decimal.NewFromInt(12),
}

var (
	matineeBasePrice   = decimal.NewFromInt(10)
	afternoonBasePrice = decimal.NewFromInt(13)
	eveningBasePrice   = decimal.NewFromInt(16)
)

var amenitySurcharges = map[string]decimal.Decimal{
	AmenityIMAX:       decimal.NewFromInt(5),
	Amenity4DX:        decimal.NewFromInt(4),
	AmenityDolbyAtmos: decimal.NewFromInt(3),
}

// SeatPrice returns the fixed ticket price for a seat category. Unknown
// categories price as Silver so a malformed seat never prices at zero.
func SeatPrice(category SeatCategory) decimal.Decimal {
	price, ok := seatPrices[category]
	if !ok {
		return seatPrices[CategorySilver]
	}

	return price
}

// ShowtimePrice derives the per-ticket price displayed on a theater's showtime
// list: a base price bucketed by hour of day plus a fixed surcharge for each
// amenity the theater has. This price is display-only; booking totals always
// come from the per-seat category table.
func ShowtimePrice(showtime string, amenities []string) (decimal.Decimal, error) {
	t, err := time.Parse(ShowtimeLayout, showtime)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid showtime %q: %w", showtime, err)
	}

	var price decimal.Decimal

	switch hour := t.Hour(); {
	case hour < 12:
		price = matineeBasePrice
	case hour < 17:
		price = afternoonBasePrice
	default:
		price = eveningBasePrice
	}

	for _, amenity := range amenities {
		if surcharge, ok := amenitySurcharges[amenity]; ok {
			price = price.Add(surcharge)
		}
	}

	return price, nil
}
