package dateexpr

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/width"
)

var (
	monthScheduledRe = regexp.MustCompile(`^(?:(\d{4})年)?(\d{1,2})月予定$`)
	absoluteRe       = regexp.MustCompile(`^(?:(\d{4})年)?(\d{1,2})月(\d{1,2})日` + weekdaySuffix + `$`)
	eraRe            = regexp.MustCompile(`^(令和|平成)(元|\d{1,2})年(\d{1,2})月(\d{1,2})日` + weekdaySuffix + `$`)
	offsetRe         = regexp.MustCompile(`^(\d{1,3})(日|週間)(後|前)$`)
	monthDayRe       = regexp.MustCompile(`^(先月|今月|来月)(\d{1,2})日$`)
	monthEndRe       = regexp.MustCompile(`^(先月|今月|来月)末$`)
	slashMonthDayRe  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)
	numericRe        = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}(?:[ T].*)?$`)
)

const weekdaySuffix = `(?:\([日月火水木金土](?:曜日?)?\))?`

// era offsets: year N of the era is offset+N.
var eraOffsets = map[string]int{
	"令和": 2018,
	"平成": 1988,
}

var relativeDays = map[string]int{
	"今日":   0,
	"本日":   0,
	"きょう":  0,
	"明日":   1,
	"あした":  1,
	"あす":   1,
	"明後日":  2,
	"あさって": 2,
	"昨日":   -1,
	"きのう":  -1,
	"一昨日":  -2,
	"おととい": -2,
}

var monthShift = map[string]int{
	"先月": -1,
	"今月": 0,
	"来月": 1,
}

// Parse resolves text against now. The returned Text is always the input
// unchanged; Date is nil when nothing matched. Resolved days are midnight in
// now's location. Parse never panics.
func Parse(text string, now time.Time) Expression {
	out := Expression{Text: text}
	if d, ok := resolve(text, now); ok {
		out.Date = &d
	}
	return out
}

func resolve(text string, now time.Time) (time.Time, bool) {
	folded := strings.TrimSpace(width.Fold.String(text))
	if folded == "" {
		return time.Time{}, false
	}
	compact := strings.Join(strings.Fields(folded), "")
	loc := now.Location()

	if d, ok := monthScheduled(compact, now.Year(), loc); ok {
		return d, true
	}
	if d, ok := absolute(compact, now.Year(), loc); ok {
		return d, true
	}
	if d, ok := slashMonthDay(compact, now.Year(), loc); ok {
		return d, true
	}
	if d, ok := era(compact, loc); ok {
		return d, true
	}
	if d, ok := relative(compact, now); ok {
		return d, true
	}
	return numeric(folded, loc)
}

// monthScheduled collapses "YYYY年M月予定" and "M月予定" to the last day of the month.
func monthScheduled(s string, defaultYear int, loc *time.Location) (time.Time, bool) {
	m := monthScheduledRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year := defaultYear
	if m[1] != "" {
		year = atoi(m[1])
	}
	month := atoi(m[2])
	if year < 1 || month < 1 || month > 12 {
		return time.Time{}, false
	}
	// day 0 of the following month is the last day of this one
	return atMidnight(year, time.Month(month)+1, 0, loc), true
}

func absolute(s string, defaultYear int, loc *time.Location) (time.Time, bool) {
	m := absoluteRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year := defaultYear
	if m[1] != "" {
		year = atoi(m[1])
	}
	return calendarDay(year, atoi(m[2]), atoi(m[3]), loc)
}

// slashMonthDay reads "M/D" in the reference year.
func slashMonthDay(s string, year int, loc *time.Location) (time.Time, bool) {
	m := slashMonthDayRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	return calendarDay(year, atoi(m[1]), atoi(m[2]), loc)
}

func era(s string, loc *time.Location) (time.Time, bool) {
	m := eraRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	n := 1
	if m[2] != "元" {
		n = atoi(m[2])
	}
	if n < 1 {
		return time.Time{}, false
	}
	return calendarDay(eraOffsets[m[1]]+n, atoi(m[3]), atoi(m[4]), loc)
}

func relative(s string, now time.Time) (time.Time, bool) {
	loc := now.Location()
	today := atMidnight(now.Year(), now.Month(), now.Day(), loc)

	if n, ok := relativeDays[s]; ok {
		return today.AddDate(0, 0, n), true
	}
	if m := offsetRe.FindStringSubmatch(s); m != nil {
		n := atoi(m[1])
		if m[2] == "週間" {
			n *= 7
		}
		if m[3] == "前" {
			n = -n
		}
		return today.AddDate(0, 0, n), true
	}
	if m := monthDayRe.FindStringSubmatch(s); m != nil {
		first := atMidnight(now.Year(), now.Month()+time.Month(monthShift[m[1]]), 1, loc)
		return calendarDay(first.Year(), int(first.Month()), atoi(m[2]), loc)
	}
	if m := monthEndRe.FindStringSubmatch(s); m != nil {
		return atMidnight(now.Year(), now.Month()+time.Month(monthShift[m[1]])+1, 0, loc), true
	}
	return time.Time{}, false
}

// numeric handles ISO and slash-separated dates, with or without a time part.
func numeric(s string, loc *time.Location) (d time.Time, ok bool) {
	if !numericRe.MatchString(s) {
		return time.Time{}, false
	}
	defer func() {
		if recover() != nil {
			d, ok = time.Time{}, false
		}
	}()
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, false
	}
	t = t.In(loc)
	return atMidnight(t.Year(), t.Month(), t.Day(), loc), true
}

// calendarDay rejects days that time.Date would silently normalise, e.g. 2月30日.
func calendarDay(year, month, day int, loc *time.Location) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := atMidnight(year, time.Month(month), day, loc)
	if d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
