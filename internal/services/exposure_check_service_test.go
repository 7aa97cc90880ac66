package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/lifecycle"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
)

func TestCheckUpcomingExposure(t *testing.T) {
	repo := newFakeDealRepo(
		confirmedDeal(t, models.BusinessStatusStatementDoneAwaitingSettle, models.AccountCompanyReijit, "2025-09-08", 40_000_000),
		confirmedDeal(t, models.BusinessStatusStatementDoneAwaitingSettle, models.AccountCompanyReijit, "2025-09-08", 30_000_000),
		confirmedDeal(t, models.BusinessStatusStatementDoneAwaitingSettle, models.AccountCompanyReijit, "2025-09-08", 20_000_000),
		// Respect for the Aged Day
		confirmedDeal(t, models.BusinessStatusAwaitingContract, models.AccountCompanyLife, "2025-09-15", 10_000_000),
		confirmedDeal(t, models.BusinessStatusAwaitingContract, models.AccountCompanyMS, "2025-09-10", 10_000_000),
		// outside the look-ahead window
		confirmedDeal(t, models.BusinessStatusAwaitingContract, models.AccountCompanyMS, "2025-12-31", 90_000_000),
		unconfirmedDeal("2025年9月8日", 90_000_000),
	)
	s := NewExposureCheckService(repo)
	s.now = func() time.Time { return testNow }

	alerts, err := s.CheckUpcomingExposure(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, models.AccountCompanyReijit, alerts[0].AccountCompany)
	assert.Equal(t, lifecycle.ExposureDanger, alerts[0].Exposure.Level)
	assert.False(t, alerts[0].BankHoliday)

	assert.Equal(t, models.AccountCompanyLife, alerts[1].AccountCompany)
	assert.Equal(t, lifecycle.ExposureNormal, alerts[1].Exposure.Level)
	assert.True(t, alerts[1].BankHoliday)
}

func TestCheckUpcomingExposureNoDeals(t *testing.T) {
	s := NewExposureCheckService(newFakeDealRepo())
	alerts, err := s.CheckUpcomingExposure(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
