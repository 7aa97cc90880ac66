package dateexpr

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "time/tzdata"
)

var tokyo = mustLoad("Asia/Tokyo")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, tokyo)
}

func TestParse(t *testing.T) {
	now := time.Date(2026, time.May, 20, 15, 4, 5, 0, tokyo)

	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"month scheduled with year", "2025年3月予定", ptr(day(2025, 3, 31))},
		{"month scheduled uses reference year", "3月予定", ptr(day(2026, 3, 31))},
		{"month scheduled february leap", "2024年2月予定", ptr(day(2024, 2, 29))},
		{"month scheduled december", "12月予定", ptr(day(2026, 12, 31))},
		{"absolute", "2025年3月15日", ptr(day(2025, 3, 15))},
		{"absolute without year", "8月10日", ptr(day(2026, 8, 10))},
		{"absolute with weekday", "2025年3月15日(土)", ptr(day(2025, 3, 15))},
		{"absolute with long weekday", "2025年3月15日（土曜日）", ptr(day(2025, 3, 15))},
		{"full width digits", "２０２５年９月８日", ptr(day(2025, 9, 8))},
		{"inner spaces", "2025年 9月 8日", ptr(day(2025, 9, 8))},
		{"reiwa", "令和7年9月8日", ptr(day(2025, 9, 8))},
		{"reiwa first year", "令和元年5月1日", ptr(day(2019, 5, 1))},
		{"heisei", "平成31年4月30日", ptr(day(2019, 4, 30))},
		{"today", "今日", ptr(day(2026, 5, 20))},
		{"tomorrow", "明日", ptr(day(2026, 5, 21))},
		{"day after tomorrow", "明後日", ptr(day(2026, 5, 22))},
		{"yesterday", "昨日", ptr(day(2026, 5, 19))},
		{"days later", "3日後", ptr(day(2026, 5, 23))},
		{"days before", "10日前", ptr(day(2026, 5, 10))},
		{"weeks later", "2週間後", ptr(day(2026, 6, 3))},
		{"next month day", "来月5日", ptr(day(2026, 6, 5))},
		{"this month end", "今月末", ptr(day(2026, 5, 31))},
		{"next month end", "来月末", ptr(day(2026, 6, 30))},
		{"iso", "2025-09-08", ptr(day(2025, 9, 8))},
		{"slash", "2025/9/8", ptr(day(2025, 9, 8))},
		{"slash month day uses reference year", "3/15", ptr(day(2026, 3, 15))},
		{"slash month day full width", "９／８", ptr(day(2026, 9, 8))},
		{"invalid slash month day", "2/30", nil},
		{"iso with offset", "2025-09-08T10:30:00+09:00", ptr(day(2025, 9, 8))},
		{"undecided", "未定", nil},
		{"adjusting", "調整中", nil},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"invalid day", "2025年2月30日", nil},
		{"invalid month scheduled", "13月予定", nil},
		{"year zero month scheduled", "0000年1月予定", nil},
		{"year zero absolute", "0000年1月1日", nil},
		{"invalid iso", "2025-02-30", nil},
		{"plain number", "12345", nil},
		{"garbage", "2025年ごろ？", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in, now)
			assert.Equal(t, tc.in, got.Text, "text must be preserved verbatim")
			if tc.want == nil {
				assert.Nil(t, got.Date)
				assert.False(t, got.Resolved())
				return
			}
			require.NotNil(t, got.Date)
			assert.True(t, tc.want.Equal(*got.Date), "want %s got %s", tc.want, got.Date)
			assert.Equal(t, tokyo, got.Date.Location())
		})
	}
}

func TestParseMonthScheduledCollapse(t *testing.T) {
	got := Parse("2025年3月予定", time.Now().In(tokyo))
	require.NotNil(t, got.Date)
	assert.Equal(t, "2025-03-31", got.Day())

	ref := time.Date(2026, time.January, 1, 9, 0, 0, 0, tokyo)
	got = Parse("3月予定", ref)
	require.NotNil(t, got.Date)
	assert.Equal(t, "2026-03-31", got.Day())
	assert.Equal(t, "3月予定", got.Text)
}

func TestPickerRoundTrip(t *testing.T) {
	now := time.Date(2026, time.May, 20, 0, 0, 0, 0, tokyo)
	start := day(2023, 12, 25)

	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		picked := FromPicker(d)
		got := Parse(picked.Text, now)
		require.NotNil(t, got.Date, picked.Text)
		require.True(t, d.Equal(*got.Date), "round trip failed for %s", picked.Text)
	}
}

func TestFormatPicker(t *testing.T) {
	assert.Equal(t, "2025年3月15日(土)", FormatPicker(day(2025, 3, 15)))
	assert.Equal(t, "2025年9月8日(月)", FormatPicker(day(2025, 9, 8)))
	assert.Equal(t, "2026年1月4日(日)", FormatPicker(day(2026, 1, 4)))
}

func TestStoredDoesNotReparse(t *testing.T) {
	resolvedOn := day(2025, 8, 11)
	e := Stored("明日", &resolvedOn, tokyo)
	require.NotNil(t, e.Date)
	assert.Equal(t, "2025-08-11", e.Day())
	assert.Equal(t, "明日", e.Text)

	utcMidnight := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	e = Stored("2025年8月31日", &utcMidnight, tokyo)
	assert.Equal(t, day(2025, 8, 31), *e.Date)

	e = Stored("未定", nil, tokyo)
	assert.Nil(t, e.Date)
}

func TestExpressionJSON(t *testing.T) {
	e := Parse("2025年9月8日", time.Now().In(tokyo))
	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"2025年9月8日","date":"2025-09-08"}`, string(b))

	b, err = json.Marshal(Expression{Text: "調整中"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"調整中","date":null}`, string(b))

	var back Expression
	require.NoError(t, json.Unmarshal([]byte(`{"text":"9月予定","date":"2025-09-30"}`), &back))
	assert.Equal(t, "9月予定", back.Text)
	assert.Equal(t, "2025-09-30", back.Day())
}

func ptr(t time.Time) *time.Time { return &t }
