package dtos

import (
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dateexpr"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/lifecycle"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
)

// ----- Requests -----

// Date fields arrive as the raw text typed by the user; the server resolves
// them against the current business-local time.
type CreateDealRequest struct {
	Assignees               []string `json:"assignees" validate:"required,min=1,dive,required"`
	PropertyName            string   `json:"property_name" validate:"required"`
	RoomNumber              string   `json:"room_number"`
	OwnerName               string   `json:"owner_name"`
	LeadSource              string   `json:"lead_source"`
	AcquisitionAmount       int64    `json:"acquisition_amount"`
	ExitAmount              int64    `json:"exit_amount"`
	CommissionTotal         int64    `json:"commission_total"`
	DepositFromBuyer        int64    `json:"deposit_from_buyer"`
	ContractType            string   `json:"contract_type"`
	AcquisitionContractDate string   `json:"acquisition_contract_date" validate:"required"`
	ResaleContractDate      string   `json:"resale_contract_date"`
	BuyerCompany            string   `json:"buyer_company"`
	IntermediaryCompany     string   `json:"intermediary_company"`
	BrokerCompany           string   `json:"broker_company"`
	MortgageBank            string   `json:"mortgage_bank"`
	Memo                    string   `json:"memo"`
}

// UpdateDealRequest patches descriptive fields. Nil means "leave as is".
type UpdateDealRequest struct {
	RowVersion              *int64              `json:"row_version,omitempty"`
	Assignees               *[]string           `json:"assignees,omitempty" validate:"omitempty,min=1,dive,required"`
	PropertyName            *string             `json:"property_name,omitempty" validate:"omitempty,min=1"`
	RoomNumber              *string             `json:"room_number,omitempty"`
	OwnerName               *string             `json:"owner_name,omitempty"`
	LeadSource              *string             `json:"lead_source,omitempty"`
	AcquisitionAmount       *int64              `json:"acquisition_amount,omitempty"`
	ExitAmount              *int64              `json:"exit_amount,omitempty"`
	CommissionTotal         *int64              `json:"commission_total,omitempty"`
	DepositFromBuyer        *int64              `json:"deposit_from_buyer,omitempty"`
	ContractType            *string             `json:"contract_type,omitempty"`
	AcquisitionContractDate *string             `json:"acquisition_contract_date,omitempty" validate:"omitempty,min=1"`
	ResaleContractDate      *string             `json:"resale_contract_date,omitempty"`
	BuyerCompany            *string             `json:"buyer_company,omitempty"`
	IntermediaryCompany     *string             `json:"intermediary_company,omitempty"`
	BrokerCompany           *string             `json:"broker_company,omitempty"`
	MortgageBank            *string             `json:"mortgage_bank,omitempty"`
	Memo                    *string             `json:"memo,omitempty"`
	LegacyFlags             *models.LegacyFlags `json:"legacy_flags,omitempty"`
}

type ChangeBusinessStatusRequest struct {
	RowVersion     *int64  `json:"row_version,omitempty"`
	Status         string  `json:"status" validate:"required"`
	SettlementDate *string `json:"settlement_date,omitempty"`
}

type SetSettlementDateRequest struct {
	RowVersion     *int64 `json:"row_version,omitempty"`
	SettlementDate string `json:"settlement_date" validate:"required"`
}

type SetDocumentStatusRequest struct {
	RowVersion *int64 `json:"row_version,omitempty"`
	Status     string `json:"status" validate:"required"`
}

// SetSettlementAccountRequest selects the company and, optionally, one of
// its bank accounts. An empty company clears both.
type SetSettlementAccountRequest struct {
	RowVersion  *int64 `json:"row_version,omitempty"`
	Company     string `json:"company"`
	BankAccount string `json:"bank_account"`
}

type CheckItemUpdate struct {
	Path    string `json:"path" validate:"required"`
	Checked bool   `json:"checked"`
}

type UpdateCheckItemsRequest struct {
	RowVersion *int64            `json:"row_version,omitempty"`
	Items      []CheckItemUpdate `json:"items" validate:"required,min=1,dive"`
}

type DocumentItemUpdate struct {
	Path   string `json:"path" validate:"required"`
	Status string `json:"status" validate:"required"`
}

type UpdateDocumentItemsRequest struct {
	RowVersion *int64               `json:"row_version,omitempty"`
	Items      []DocumentItemUpdate `json:"items" validate:"required,min=1,dive"`
}

type StageUpdate struct {
	Path    string `json:"path" validate:"required"`
	Stage   string `json:"stage" validate:"required,oneof=created sent cb_completed cr_completed"`
	Checked bool   `json:"checked"`
}

type UpdateStagesRequest struct {
	RowVersion *int64        `json:"row_version,omitempty"`
	Items      []StageUpdate `json:"items" validate:"required,min=1,dive"`
}

// ----- Responses -----

type EnumValue struct {
	Code     string `json:"code"`
	Label    string `json:"label"`
	Emphasis string `json:"emphasis,omitempty"`
}

// DealResponse is a Deal plus the values derived from it at read time.
type DealResponse struct {
	*models.Deal
	Profit                 int64                  `json:"profit"`
	BusinessStatusInfo     EnumValue              `json:"business_status_info"`
	DocumentStatusInfo     EnumValue              `json:"document_status_info"`
	Category               models.Category        `json:"category"`
	ClassificationDate     *string                `json:"classification_date"`
	ProgressSummary        models.ProgressSummary `json:"progress_summary"`
	AcquisitionDateDisplay string                 `json:"acquisition_date_display"`
}

func NewDealResponse(d *models.Deal) DealResponse {
	resp := DealResponse{
		Deal:   d,
		Profit: d.Profit(),
		BusinessStatusInfo: EnumValue{
			Code:     string(d.BusinessStatus),
			Label:    d.BusinessStatus.Label(),
			Emphasis: string(d.BusinessStatus.Emphasis()),
		},
		DocumentStatusInfo: EnumValue{
			Code:     string(d.DocumentStatus),
			Label:    d.DocumentStatus.Label(),
			Emphasis: string(d.DocumentStatus.Emphasis()),
		},
		Category:               d.BusinessStatus.Category(),
		ProgressSummary:        d.Progress.Summary(),
		AcquisitionDateDisplay: d.AcquisitionContractDate.Text,
	}
	if day := d.ClassificationDate(); day != nil {
		s := day.Format("2006-01-02")
		resp.ClassificationDate = &s
	}
	return resp
}

func NewDealResponses(deals []*models.Deal) []DealResponse {
	out := make([]DealResponse, len(deals))
	for i, d := range deals {
		out[i] = NewDealResponse(d)
	}
	return out
}

type DealListResponse struct {
	Deals  []DealResponse   `json:"deals"`
	Totals lifecycle.Totals `json:"totals"`
}

type UnconfirmedDealsResponse struct {
	Deals  []DealResponse   `json:"deals"`
	Totals lifecycle.Totals `json:"totals"`
}

// ----- Date expressions -----

type ParseDateExpressionRequest struct {
	Text string `json:"text" validate:"required"`
}

type DateExpressionResponse struct {
	Expression dateexpr.Expression `json:"expression"`
	Resolved   bool                `json:"resolved"`
	Display    string              `json:"display,omitempty"`
}
