package pricing

import (
	"math"
	"time"
)

// Nights returns the number of billable nights between check-in and check-out,
// rounding partial days up. Zero when the range is empty or inverted.
func Nights(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	hours := checkOut.Sub(checkIn).Hours()
	return int(math.Ceil(hours / 24))
}

// Total is the booking total: nights times the nightly rate.
func Total(checkIn, checkOut time.Time, pricePerNight float64) float64 {
	return float64(Nights(checkIn, checkOut)) * pricePerNight
}
