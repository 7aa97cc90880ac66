// Package dateexpr interprets the free-text dates staff type into deal
// records. Text is always kept as entered; a calendar day is attached only
// when one can be recognised.
package dateexpr

import (
	"encoding/json"
	"fmt"
	"time"
)

const isoDay = "2006-01-02"

var pickerWeekdays = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// Expression is a date as entered by a person. Date is nil when Text could
// not be resolved ("未定", "調整中", ...).
type Expression struct {
	Text string
	Date *time.Time
}

// Resolved reports whether the expression carries a calendar day.
func (e Expression) Resolved() bool {
	return e.Date != nil
}

// IsZero reports whether nothing was entered at all.
func (e Expression) IsZero() bool {
	return e.Text == "" && e.Date == nil
}

// Day returns the resolved day as YYYY-MM-DD, or "" when unresolved.
func (e Expression) Day() string {
	if e.Date == nil {
		return ""
	}
	return e.Date.Format(isoDay)
}

// Stored rebuilds an expression read back from storage. The stored day is
// authoritative and Text is not re-parsed, so relative entries such as
// "明日" keep the day they were resolved to.
func Stored(text string, day *time.Time, loc *time.Location) Expression {
	if day == nil {
		return Expression{Text: text}
	}
	d := atMidnight(day.Year(), day.Month(), day.Day(), loc)
	return Expression{Text: text, Date: &d}
}

// FromPicker builds the expression produced by the calendar picker.
func FromPicker(day time.Time) Expression {
	d := atMidnight(day.Year(), day.Month(), day.Day(), day.Location())
	return Expression{Text: FormatPicker(d), Date: &d}
}

// FormatPicker renders day in the picker's canonical form, e.g. 2025年3月15日(土).
func FormatPicker(day time.Time) string {
	return fmt.Sprintf("%d年%d月%d日(%s)", day.Year(), int(day.Month()), day.Day(), pickerWeekdays[day.Weekday()])
}

type expressionJSON struct {
	Text string  `json:"text"`
	Date *string `json:"date"`
}

func (e Expression) MarshalJSON() ([]byte, error) {
	out := expressionJSON{Text: e.Text}
	if e.Date != nil {
		d := e.Date.Format(isoDay)
		out.Date = &d
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the day in UTC; callers that care about a business
// timezone should pass the result through Stored.
func (e *Expression) UnmarshalJSON(b []byte) error {
	var in expressionJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	e.Text = in.Text
	e.Date = nil
	if in.Date != nil && *in.Date != "" {
		d, err := time.Parse(isoDay, *in.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", *in.Date, err)
		}
		e.Date = &d
	}
	return nil
}

func atMidnight(y int, m time.Month, d int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
