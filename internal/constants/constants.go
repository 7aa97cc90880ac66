package constants

import "time"

// Business calendar
const (
	BusinessTimezone = "Asia/Tokyo"
	DateLayout       = "2006-01-02"
)

// Settlement exposure. TransferLimitYen is the per-account, per-day wire
// transfer ceiling; the percentages are inclusive lower bounds.
const (
	TransferLimitYen       int64 = 100_000_000
	ExposureCautionPercent       = 50
	ExposureDangerPercent        = 80
)

// Exposure check job
const (
	ExposureCheckCronSpec   = "0 8 * * *" // 08:00 Asia/Tokyo daily
	ExposureCheckJobTimeout = 2 * time.Minute
	ExposureLookaheadDays   = 45
)

// Deal list paging
const (
	DefaultListLimit = 200
	MaxListLimit     = 1000
)
