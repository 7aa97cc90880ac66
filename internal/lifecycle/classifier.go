// Package lifecycle holds the pure reporting rules over deal snapshots:
// bucketing by business category, month filtering, totals and the
// per-account settlement exposure.
package lifecycle

import (
	"sort"
	"time"

	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// Buckets partitions deals by business category. Slices are never nil.
type Buckets struct {
	Unconfirmed         []*models.Deal
	ConfirmedInProgress []*models.Deal
	Completed           []*models.Deal
}

// ClassifyByBusinessCategory puts every deal in exactly one bucket,
// preserving input order within each.
func ClassifyByBusinessCategory(deals []*models.Deal) Buckets {
	out := Buckets{
		Unconfirmed:         []*models.Deal{},
		ConfirmedInProgress: []*models.Deal{},
		Completed:           []*models.Deal{},
	}
	for _, d := range deals {
		switch d.BusinessStatus.Category() {
		case models.CategoryUnconfirmed:
			out.Unconfirmed = append(out.Unconfirmed, d)
		case models.CategoryCompleted:
			out.Completed = append(out.Completed, d)
		default:
			out.ConfirmedInProgress = append(out.ConfirmedInProgress, d)
		}
	}
	return out
}

// Of returns the bucket for c.
func (b Buckets) Of(c models.Category) []*models.Deal {
	switch c {
	case models.CategoryUnconfirmed:
		return b.Unconfirmed
	case models.CategoryCompleted:
		return b.Completed
	default:
		return b.ConfirmedInProgress
	}
}

// FilterByMonth keeps deals whose classification date falls in the given
// calendar month, evaluated in the date's own location. Deals without a
// resolvable date are dropped.
func FilterByMonth(deals []*models.Deal, year int, month time.Month) []*models.Deal {
	out := []*models.Deal{}
	for _, d := range deals {
		day := d.ClassificationDate()
		if day == nil {
			continue
		}
		start, end := utils.MonthRange(year, month, day.Location())
		if utils.WithinInclusive(*day, start, end) {
			out = append(out, d)
		}
	}
	return out
}

// Totals sums the money columns shown under each listing.
type Totals struct {
	Count             int   `json:"count"`
	Profit            int64 `json:"profit"`
	AcquisitionAmount int64 `json:"acquisition_amount"`
	ExitAmount        int64 `json:"exit_amount"`
	DepositFromBuyer  int64 `json:"deposit_from_buyer"`
}

func SumTotals(deals []*models.Deal) Totals {
	var t Totals
	for _, d := range deals {
		t.Count++
		t.Profit += d.Profit()
		t.AcquisitionAmount += d.AcquisitionAmount
		t.ExitAmount += d.ExitAmount
		t.DepositFromBuyer += d.DepositFromBuyer
	}
	return t
}

// SortByAcquisitionDateDesc returns a copy ordered newest acquisition first.
// Deals without a resolved acquisition date go last, in input order.
func SortByAcquisitionDateDesc(deals []*models.Deal) []*models.Deal {
	out := append([]*models.Deal{}, deals...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].AcquisitionContractDate.Date, out[j].AcquisitionContractDate.Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return out
}
