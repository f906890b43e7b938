package utils

import (
	"fmt"
	"math"
	"time"
)

// NextMonthlyExpiration returns the next standard monthly expiration, the
// third Friday of the month:
// - Third Friday of current month if we haven't reached the expiration week yet
// - Third Friday of next month if we're in or past the expiration week
func NextMonthlyExpiration() string {
	today := time.Now()
	currentMonth := today.Month()
	currentYear := today.Year()

	// Find 3rd Friday of current month
	firstDay := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, today.Location())
	firstFriday := firstDay
	for firstFriday.Weekday() != time.Friday {
		firstFriday = firstFriday.AddDate(0, 0, 1)
	}
	thirdFriday := firstFriday.AddDate(0, 0, 14)

	// If current day is in the week of 3rd Friday or past it, use next month's 3rd Friday
	weekStart := thirdFriday.AddDate(0, 0, -7)

	if today.After(weekStart) || today.Equal(weekStart) {
		nextMonth := currentMonth + 1
		nextYear := currentYear
		if nextMonth > 12 {
			nextMonth = 1
			nextYear++
		}
		nextFirstDay := time.Date(nextYear, nextMonth, 1, 0, 0, 0, 0, today.Location())
		nextFirstFriday := nextFirstDay
		for nextFirstFriday.Weekday() != time.Friday {
			nextFirstFriday = nextFirstFriday.AddDate(0, 0, 1)
		}
		nextThirdFriday := nextFirstFriday.AddDate(0, 0, 14)
		return nextThirdFriday.Format("2006-01-02")
	}

	return thirdFriday.Format("2006-01-02")
}

// YearsBetween converts a date span into year fractions on the 365-day
// calendar the pricing formulas use. Spans that end in the past clamp to zero.
func YearsBetween(from, to time.Time) float64 {
	days := to.Sub(from).Hours() / 24.0
	return math.Max(0, days/365.0)
}

// YearsUntil parses an expiration date in YYYY-MM-DD form and returns the
// time remaining as year fractions
func YearsUntil(expiry string) (float64, error) {
	t, err := time.Parse("2006-01-02", expiry)
	if err != nil {
		return 0, fmt.Errorf("invalid expiration date %q: expected YYYY-MM-DD", expiry)
	}
	return YearsBetween(time.Now(), t), nil
}
