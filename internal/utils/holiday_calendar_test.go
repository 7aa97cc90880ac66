package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBankCalendar(t *testing.T) {
	loc := BusinessLocation()
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, loc) }

	tests := []struct {
		name     string
		date     time.Time
		business bool
	}{
		{"plain weekday", day(2025, time.September, 8), true},
		{"saturday", day(2025, time.September, 13), false},
		{"respect for the aged day", day(2025, time.September, 15), false},
		{"new year's eve closure", day(2025, time.December, 31), false},
		{"jan 2 closure", day(2026, time.January, 2), false},
		{"first business day of the year", day(2026, time.January, 5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.business, IsBankBusinessDay(tt.date))
		})
	}
}

func TestHolidayNameAndNextBusinessDay(t *testing.T) {
	loc := BusinessLocation()
	closure := time.Date(2025, time.December, 31, 0, 0, 0, 0, loc)

	assert.True(t, IsBankHoliday(closure))
	assert.Equal(t, "大晦日", HolidayName(closure))
	assert.Empty(t, HolidayName(time.Date(2025, time.September, 8, 0, 0, 0, 0, loc)))

	next := NextBankBusinessDay(closure)
	assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, loc), next)

	weekday := time.Date(2025, time.September, 8, 15, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2025, time.September, 8, 0, 0, 0, 0, loc), NextBankBusinessDay(weekday))
}
