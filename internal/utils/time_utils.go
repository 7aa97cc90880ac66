package utils

import (
	"sync"
	"time"

	"github.com/tk20211228/deal-flow-sample-sqlite/internal/constants"
)

var (
	businessLoc     *time.Location
	businessLocOnce sync.Once
)

// BusinessLocation is the timezone all deal dates are interpreted in. It
// falls back to a fixed +09:00 zone when tzdata is unavailable.
func BusinessLocation() *time.Location {
	businessLocOnce.Do(func() {
		loc, err := time.LoadLocation(constants.BusinessTimezone)
		if err != nil {
			loc = time.FixedZone("JST", 9*60*60)
		}
		businessLoc = loc
	})
	return businessLoc
}

// BusinessNow is the current instant in the business timezone.
func BusinessNow() time.Time {
	return time.Now().In(BusinessLocation())
}

// MonthRange returns the first and last instants of the calendar month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// WithinInclusive reports whether start <= t <= end.
func WithinInclusive(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
