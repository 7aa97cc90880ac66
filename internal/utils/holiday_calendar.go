package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/jp"
)

// bank calendar: national holidays plus the year-end closure (Dec 31 - Jan 3)
var jpBank = cal.NewBusinessCalendar()

var yearEndClosure = []*cal.Holiday{
	{Name: "大晦日", Type: cal.ObservanceBank, Month: time.December, Day: 31, Func: cal.CalcDayOfMonth},
	{Name: "銀行休業日 1月2日", Type: cal.ObservanceBank, Month: time.January, Day: 2, Func: cal.CalcDayOfMonth},
	{Name: "銀行休業日 1月3日", Type: cal.ObservanceBank, Month: time.January, Day: 3, Func: cal.CalcDayOfMonth},
}

func init() {
	jpBank.AddHoliday(jp.Holidays...)
	jpBank.AddHoliday(yearEndClosure...)
}

// IsBankHoliday reports whether t falls on a national or bank holiday.
func IsBankHoliday(t time.Time) bool {
	actual, observed, _ := jpBank.IsHoliday(t)
	return actual || observed
}

// IsBankBusinessDay reports whether wire transfers settle on t's calendar day.
func IsBankBusinessDay(t time.Time) bool {
	return jpBank.IsWorkday(t)
}

// HolidayName returns the holiday observed on t, or "".
func HolidayName(t time.Time) string {
	actual, observed, h := jpBank.IsHoliday(t)
	if !(actual || observed) || h == nil {
		return ""
	}
	return h.Name
}

// NextBankBusinessDay returns the first bank business day on or after t.
func NextBankBusinessDay(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	for !IsBankBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
