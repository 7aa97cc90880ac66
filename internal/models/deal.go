package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dateexpr"
	shared_models "github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/models"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// LegacyFlags are single-checkbox trackers that predate ProgressTree. They
// are stored and returned but play no part in the lifecycle.
type LegacyFlags struct {
	OwnershipTransfer bool `json:"ownership_transfer"`
	AccountTransfer   bool `json:"account_transfer"`
	DocumentSent      bool `json:"document_sent"`
	WorkplaceDM       bool `json:"workplace_dm"`
	TransactionLedger bool `json:"transaction_ledger"`
	ManagementCancel  bool `json:"management_cancel"`
}

// Deal is one acquisition/resale transaction. Money is integer yen.
//
// SettlementDate is nil exactly when BusinessStatus is UNCONFIRMED, and
// SettlementBankAccount always belongs to SettlementAccountCompany. Both
// are maintained by the setters below; direct field writes bypass them.
type Deal struct {
	shared_models.Versioned
	ID uuid.UUID `json:"id"`

	Assignees    []string `json:"assignees"`
	PropertyName string   `json:"property_name"`
	RoomNumber   string   `json:"room_number"`
	OwnerName    string   `json:"owner_name"`
	LeadSource   string   `json:"lead_source"`

	AcquisitionAmount int64 `json:"acquisition_amount"`
	ExitAmount        int64 `json:"exit_amount"`
	CommissionTotal   int64 `json:"commission_total"`
	DepositFromBuyer  int64 `json:"deposit_from_buyer"`

	ContractType            ContractType         `json:"contract_type"`
	AcquisitionContractDate dateexpr.Expression  `json:"acquisition_contract_date"`
	ResaleContractDate      dateexpr.Expression  `json:"resale_contract_date"`
	SettlementDate          *dateexpr.Expression `json:"settlement_date"`

	BuyerCompany        string              `json:"buyer_company"`
	IntermediaryCompany IntermediaryCompany `json:"intermediary_company"`
	BrokerCompany       string              `json:"broker_company"`
	MortgageBank        string              `json:"mortgage_bank"`

	SettlementAccountCompany AccountCompany `json:"settlement_account_company"`
	SettlementBankAccount    BankAccount    `json:"settlement_bank_account"`

	Progress       ProgressTree   `json:"progress"`
	BusinessStatus BusinessStatus `json:"business_status"`
	DocumentStatus DocumentStatus `json:"document_status"`
	LegacyFlags    LegacyFlags    `json:"legacy_flags"`
	Memo           string         `json:"memo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDeal starts a deal at acquisition-contract time.
func NewDeal(id uuid.UUID, assignees []string, acquisitionDate dateexpr.Expression) *Deal {
	d := &Deal{
		ID:                      id,
		AcquisitionContractDate: acquisitionDate,
		Progress:                EmptyProgressTree(),
		BusinessStatus:          BusinessStatusUnconfirmed,
		DocumentStatus:          DocumentStatusRequestPending,
	}
	d.SetAssignees(assignees)
	return d
}

func (d *Deal) GetID() string {
	return d.ID.String()
}

// Profit is exit - acquisition + commission, computed on every call.
func (d *Deal) Profit() int64 {
	return d.ExitAmount - d.AcquisitionAmount + d.CommissionTotal
}

// SetAssignees stores trimmed, de-duplicated names in their given order.
func (d *Deal) SetAssignees(names []string) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	d.Assignees = out
}

// ChangeBusinessStatus moves the deal to status. Moving to UNCONFIRMED
// clears the settlement date and rejects a supplied one. Any other status
// needs a settlement date, either supplied here or already on the deal.
func (d *Deal) ChangeBusinessStatus(status BusinessStatus, settlement *dateexpr.Expression) error {
	if !status.Valid() {
		return fmt.Errorf("%w: business status %q", utils.ErrInvalidStatus, status)
	}

	if status == BusinessStatusUnconfirmed {
		if settlement != nil && !blank(settlement.Text) {
			return utils.ErrSettlementDateNotAllowed
		}
		d.BusinessStatus = status
		d.SettlementDate = nil
		return nil
	}

	next := d.SettlementDate
	if settlement != nil {
		next = settlement
	}
	if next == nil || blank(next.Text) {
		return utils.ErrSettlementDateRequired
	}
	cp := *next
	d.SettlementDate = &cp
	d.BusinessStatus = status
	return nil
}

// SetSettlementDate replaces the settlement date of a confirmed deal.
func (d *Deal) SetSettlementDate(e dateexpr.Expression) error {
	if d.BusinessStatus == BusinessStatusUnconfirmed {
		return utils.ErrSettlementDateNotAllowed
	}
	if blank(e.Text) {
		return utils.ErrSettlementDateRequired
	}
	d.SettlementDate = &e
	return nil
}

// SetAccountCompany selects the settlement company. Choosing a different
// company clears the bank account.
func (d *Deal) SetAccountCompany(c AccountCompany) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", utils.ErrInvalidAccountCompany, c)
	}
	if c != d.SettlementAccountCompany {
		d.SettlementBankAccount = ""
	}
	d.SettlementAccountCompany = c
	return nil
}

// SetBankAccount selects an account of the current company; "" clears it.
func (d *Deal) SetBankAccount(a BankAccount) error {
	if a == "" {
		d.SettlementBankAccount = ""
		return nil
	}
	if !d.SettlementAccountCompany.HasBankAccount(a) {
		return fmt.Errorf("%w: %q is not an account of %q", utils.ErrBankAccountMismatch, a, d.SettlementAccountCompany)
	}
	d.SettlementBankAccount = a
	return nil
}

// ClassificationDate is the day used to place the deal in a month: the
// acquisition contract date while unconfirmed, the settlement date after.
func (d *Deal) ClassificationDate() *time.Time {
	if d.BusinessStatus == BusinessStatusUnconfirmed {
		return d.AcquisitionContractDate.Date
	}
	if d.SettlementDate == nil {
		return nil
	}
	return d.SettlementDate.Date
}

// ResolvedSettlementDay returns the settlement day, or nil when unconfirmed
// or when the settlement text has no calendar day yet.
func (d *Deal) ResolvedSettlementDay() *time.Time {
	if d.SettlementDate == nil {
		return nil
	}
	return d.SettlementDate.Date
}

// Validate checks every invariant a stored deal must satisfy.
func (d *Deal) Validate() error {
	if len(d.Assignees) == 0 {
		return utils.ErrMissingAssignee
	}
	if !d.BusinessStatus.Valid() {
		return fmt.Errorf("%w: business status %q", utils.ErrInvalidStatus, d.BusinessStatus)
	}
	if !d.DocumentStatus.Valid() {
		return fmt.Errorf("%w: document status %q", utils.ErrInvalidStatus, d.DocumentStatus)
	}
	unconfirmed := d.BusinessStatus == BusinessStatusUnconfirmed
	if unconfirmed && d.SettlementDate != nil {
		return utils.ErrSettlementDateNotAllowed
	}
	if !unconfirmed && d.SettlementDate == nil {
		return utils.ErrSettlementDateRequired
	}
	if !d.SettlementAccountCompany.Valid() {
		return fmt.Errorf("%w: %q", utils.ErrInvalidAccountCompany, d.SettlementAccountCompany)
	}
	if d.SettlementBankAccount != "" && !d.SettlementAccountCompany.HasBankAccount(d.SettlementBankAccount) {
		return fmt.Errorf("%w: %q", utils.ErrBankAccountMismatch, d.SettlementBankAccount)
	}
	if !d.ContractType.Valid() {
		return fmt.Errorf("%w: contract type %q", utils.ErrInvalidEnumValue, d.ContractType)
	}
	if !d.IntermediaryCompany.Valid() {
		return fmt.Errorf("%w: intermediary company %q", utils.ErrInvalidEnumValue, d.IntermediaryCompany)
	}
	if err := d.Progress.Validate(); err != nil {
		return fmt.Errorf("progress: %w", err)
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
