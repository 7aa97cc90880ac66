package dtos

import (
	"github.com/shopspring/decimal"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/lifecycle"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
)

type SettlementExposureDTO struct {
	AccountCompany      string          `json:"account_company"`
	SettlementDate      string          `json:"settlement_date"` // YYYY-MM-DD
	TotalExitAmount     int64           `json:"total_exit_amount"`
	DealCount           int             `json:"deal_count"`
	PercentOfLimit      decimal.Decimal `json:"percent_of_limit"`
	Level               string          `json:"level"`
	BankBusinessDay     bool            `json:"bank_business_day"`
	HolidayName         string          `json:"holiday_name,omitempty"`
	NextBankBusinessDay string          `json:"next_bank_business_day,omitempty"`
}

type BucketDTO struct {
	Deals  []DealResponse   `json:"deals"`
	Totals lifecycle.Totals `json:"totals"`
}

type MonthlyReportResponse struct {
	Year                int                     `json:"year"`
	Month               int                     `json:"month"`
	AccountCompany      string                  `json:"account_company"`
	TransferLimit       int64                   `json:"transfer_limit"`
	Unconfirmed         BucketDTO               `json:"unconfirmed"`
	ConfirmedInProgress BucketDTO               `json:"confirmed_in_progress"`
	Completed           BucketDTO               `json:"completed"`
	Exposures           []SettlementExposureDTO `json:"exposures"`
}

type ReferenceResponse struct {
	BusinessStatuses      []EnumValue          `json:"business_statuses"`
	DocumentStatuses      []EnumValue          `json:"document_statuses"`
	DocumentItemStatuses  []EnumValue          `json:"document_item_statuses"`
	ContractTypes         []EnumValue          `json:"contract_types"`
	IntermediaryCompanies []EnumValue          `json:"intermediary_companies"`
	AccountCompanies      []AccountCompanyDTO  `json:"account_companies"`
	ProgressPaths         models.ProgressPaths `json:"progress_paths"`
	Suggestions           SuggestionsDTO       `json:"suggestions"`
	TransferLimit         int64                `json:"transfer_limit"`
}

type AccountCompanyDTO struct {
	Code         string   `json:"code"`
	Label        string   `json:"label"`
	BankAccounts []string `json:"bank_accounts"`
}

type SuggestionsDTO struct {
	BrokerCompanies []string `json:"broker_companies"`
	Assignees       []string `json:"assignees"`
	LeadSources     []string `json:"lead_sources"`
	MortgageBanks   []string `json:"mortgage_banks"`
}
