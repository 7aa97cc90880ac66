package lifecycle

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/constants"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
)

// TransferLimit is the per-account, per-day wire-transfer ceiling in yen.
const TransferLimit = constants.TransferLimitYen

// ExposureLevel flags how close a settlement day is to TransferLimit. It is
// advisory; nothing blocks a day from exceeding the limit.
type ExposureLevel string

const (
	ExposureNormal  ExposureLevel = "normal"
	ExposureCaution ExposureLevel = "caution"
	ExposureDanger  ExposureLevel = "danger"
)

var (
	hundred        = decimal.NewFromInt(100)
	cautionPercent = decimal.NewFromInt(constants.ExposureCautionPercent)
	dangerPercent  = decimal.NewFromInt(constants.ExposureDangerPercent)
)

// SettlementExposure is the total wired out of one account on one day.
type SettlementExposure struct {
	SettlementDate  time.Time
	TotalExitAmount int64
	DealCount       int
	PercentOfLimit  decimal.Decimal
	Level           ExposureLevel
}

// PercentOfLimit returns total / TransferLimit * 100 without rounding.
func PercentOfLimit(total int64) decimal.Decimal {
	return decimal.NewFromInt(total).Mul(hundred).Div(decimal.NewFromInt(TransferLimit))
}

// ClassifyExposure maps a percentage to its level; both bounds are inclusive.
func ClassifyExposure(percent decimal.Decimal) ExposureLevel {
	switch {
	case percent.GreaterThanOrEqual(dangerPercent):
		return ExposureDanger
	case percent.GreaterThanOrEqual(cautionPercent):
		return ExposureCaution
	default:
		return ExposureNormal
	}
}

// AggregateByAccount groups the confirmed deals routed through company by
// settlement day, ordered by day ascending. Deals whose settlement text has
// no calendar day are left out.
func AggregateByAccount(deals []*models.Deal, company models.AccountCompany) []SettlementExposure {
	type key struct {
		y int
		m time.Month
		d int
	}
	groups := map[key]*SettlementExposure{}

	for _, d := range deals {
		if d.SettlementAccountCompany != company || d.BusinessStatus == models.BusinessStatusUnconfirmed {
			continue
		}
		day := d.ResolvedSettlementDay()
		if day == nil {
			continue
		}
		k := key{day.Year(), day.Month(), day.Day()}
		g, ok := groups[k]
		if !ok {
			g = &SettlementExposure{
				SettlementDate: time.Date(k.y, k.m, k.d, 0, 0, 0, 0, day.Location()),
			}
			groups[k] = g
		}
		g.TotalExitAmount += d.ExitAmount
		g.DealCount++
	}

	out := make([]SettlementExposure, 0, len(groups))
	for _, g := range groups {
		g.PercentOfLimit = PercentOfLimit(g.TotalExitAmount)
		g.Level = ClassifyExposure(g.PercentOfLimit)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SettlementDate.Before(out[j].SettlementDate)
	})
	return out
}
