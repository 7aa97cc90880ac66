package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tk20211228/deal-flow-sample-sqlite/internal/constants"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dtos"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/lifecycle"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
	internal_repositories "github.com/tk20211228/deal-flow-sample-sqlite/internal/repositories"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
	internal_utils "github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

type ReportService struct {
	dealRepo internal_repositories.DealRepository
}

func NewReportService(dealRepo internal_repositories.DealRepository) *ReportService {
	return &ReportService{dealRepo: dealRepo}
}

// MonthlyReport buckets the deals whose classification date falls in the
// month and aggregates their settlements per account company. With an
// empty account every company is aggregated.
func (s *ReportService) MonthlyReport(ctx context.Context, year int, month time.Month, account string) (*dtos.MonthlyReportResponse, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    fmt.Sprintf("invalid month %d-%d", year, month),
		}
	}
	company, err := models.ParseAccountCompany(account)
	if err != nil {
		return nil, toAppError(err, "build monthly report")
	}

	all, err := s.dealRepo.List(ctx, internal_repositories.DealFilter{})
	if err != nil {
		return nil, toAppError(err, "build monthly report")
	}
	inMonth := lifecycle.FilterByMonth(all, year, month)
	buckets := lifecycle.ClassifyByBusinessCategory(inMonth)

	companies := models.AccountCompanies()
	if company != models.AccountCompanyNone {
		companies = []models.AccountCompany{company}
	}
	exposures := []dtos.SettlementExposureDTO{}
	for _, c := range companies {
		for _, e := range lifecycle.AggregateByAccount(inMonth, c) {
			exposures = append(exposures, newExposureDTO(c, e))
		}
	}

	return &dtos.MonthlyReportResponse{
		Year:                year,
		Month:               int(month),
		AccountCompany:      string(company),
		TransferLimit:       lifecycle.TransferLimit,
		Unconfirmed:         newBucket(buckets.Unconfirmed),
		ConfirmedInProgress: newBucket(buckets.ConfirmedInProgress),
		Completed:           newBucket(buckets.Completed),
		Exposures:           exposures,
	}, nil
}

// Reference returns the constant tables the entry forms are built from.
func (s *ReportService) Reference() dtos.ReferenceResponse {
	resp := dtos.ReferenceResponse{
		ProgressPaths: models.AllProgressPaths(),
		Suggestions: dtos.SuggestionsDTO{
			BrokerCompanies: models.BrokerCompanySuggestions,
			Assignees:       models.AssigneeSuggestions,
			LeadSources:     models.LeadSourceSuggestions,
			MortgageBanks:   models.MortgageBankSuggestions,
		},
		TransferLimit: lifecycle.TransferLimit,
	}
	for _, st := range models.BusinessStatuses() {
		resp.BusinessStatuses = append(resp.BusinessStatuses, dtos.EnumValue{
			Code: string(st), Label: st.Label(), Emphasis: string(st.Emphasis()),
		})
	}
	for _, st := range models.DocumentStatuses() {
		resp.DocumentStatuses = append(resp.DocumentStatuses, dtos.EnumValue{
			Code: string(st), Label: st.Label(), Emphasis: string(st.Emphasis()),
		})
	}
	for _, st := range models.DocumentItemStatuses() {
		resp.DocumentItemStatuses = append(resp.DocumentItemStatuses, dtos.EnumValue{Code: string(st), Label: st.Label()})
	}
	for _, ct := range models.ContractTypes() {
		resp.ContractTypes = append(resp.ContractTypes, dtos.EnumValue{Code: string(ct), Label: ct.Label()})
	}
	for _, ic := range models.IntermediaryCompanies() {
		resp.IntermediaryCompanies = append(resp.IntermediaryCompanies, dtos.EnumValue{Code: string(ic), Label: ic.Label()})
	}
	for _, c := range models.AccountCompanies() {
		accounts := []string{}
		for _, a := range c.BankAccounts() {
			accounts = append(accounts, string(a))
		}
		resp.AccountCompanies = append(resp.AccountCompanies, dtos.AccountCompanyDTO{
			Code: string(c), Label: c.Label(), BankAccounts: accounts,
		})
	}
	return resp
}

func newBucket(deals []*models.Deal) dtos.BucketDTO {
	sorted := lifecycle.SortByAcquisitionDateDesc(deals)
	return dtos.BucketDTO{
		Deals:  dtos.NewDealResponses(sorted),
		Totals: lifecycle.SumTotals(sorted),
	}
}

func newExposureDTO(company models.AccountCompany, e lifecycle.SettlementExposure) dtos.SettlementExposureDTO {
	out := dtos.SettlementExposureDTO{
		AccountCompany:  string(company),
		SettlementDate:  e.SettlementDate.Format(constants.DateLayout),
		TotalExitAmount: e.TotalExitAmount,
		DealCount:       e.DealCount,
		PercentOfLimit:  e.PercentOfLimit,
		Level:           string(e.Level),
		BankBusinessDay: internal_utils.IsBankBusinessDay(e.SettlementDate),
		HolidayName:     internal_utils.HolidayName(e.SettlementDate),
	}
	if !out.BankBusinessDay {
		out.NextBankBusinessDay = internal_utils.NextBankBusinessDay(e.SettlementDate).Format(constants.DateLayout)
	}
	return out
}
