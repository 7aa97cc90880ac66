package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/constants"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/lifecycle"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
	internal_repositories "github.com/tk20211228/deal-flow-sample-sqlite/internal/repositories"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
	internal_utils "github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// ExposureAlert is one upcoming settlement day that needs attention.
type ExposureAlert struct {
	AccountCompany models.AccountCompany
	Exposure       lifecycle.SettlementExposure
	BankHoliday    bool
}

type ExposureCheckService struct {
	dealRepo internal_repositories.DealRepository
	now      func() time.Time
}

func NewExposureCheckService(dealRepo internal_repositories.DealRepository) *ExposureCheckService {
	return &ExposureCheckService{dealRepo: dealRepo, now: internal_utils.BusinessNow}
}

// CheckUpcomingExposure scans settlements in the look-ahead window and logs
// every day that is at caution or danger level or falls on a bank holiday.
func (s *ExposureCheckService) CheckUpcomingExposure(ctx context.Context) ([]ExposureAlert, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, constants.ExposureLookaheadDays)

	deals, err := s.dealRepo.ListSettlingBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	alerts := []ExposureAlert{}
	for _, company := range models.AccountCompanies() {
		for _, e := range lifecycle.AggregateByAccount(deals, company) {
			holiday := !internal_utils.IsBankBusinessDay(e.SettlementDate)
			if e.Level == lifecycle.ExposureNormal && !holiday {
				continue
			}
			alerts = append(alerts, ExposureAlert{AccountCompany: company, Exposure: e, BankHoliday: holiday})

			entry := utils.Logger.WithFields(logrus.Fields{
				"account_company":  company,
				"settlement_date":  e.SettlementDate.Format(constants.DateLayout),
				"total_exit":       e.TotalExitAmount,
				"deal_count":       e.DealCount,
				"percent_of_limit": e.PercentOfLimit.String(),
				"level":            e.Level,
			})
			if e.Level != lifecycle.ExposureNormal {
				entry.Warnf("Settlement exposure at %s level", e.Level)
			}
			if holiday {
				entry.WithField("holiday", internal_utils.HolidayName(e.SettlementDate)).
					Warn("Settlement scheduled on a bank holiday")
			}
		}
	}
	utils.Logger.Infof("Exposure check finished: %d deals scanned, %d alerts", len(deals), len(alerts))
	return alerts, nil
}
