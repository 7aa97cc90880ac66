package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// Progress domains, used as the first path segment.
const (
	DomainContract   = "contract"
	DomainDocument   = "document"
	DomainSettlement = "settlement"
)

type checkItemPath struct {
	path string
	at   func(*ProgressTree) *CheckItem
}

type documentItemPath struct {
	path string
	at   func(*ProgressTree) *DocumentItem
}

type stagedItemPath struct {
	path string
	at   func(*ProgressTree) *StagedCheckItem
}

var checkItemPaths = []checkItemPath{
	{"contract.seller.contract_saved", func(p *ProgressTree) *CheckItem { return &p.Contract.Seller.ContractSaved }},
	{"contract.seller.proxy_completed", func(p *ProgressTree) *CheckItem { return &p.Contract.Seller.ProxyCompleted }},
	{"contract.seller.seller_id_saved", func(p *ProgressTree) *CheckItem { return &p.Contract.Seller.SellerIDSaved }},

	{"settlement.statement.loan_calculation_saved", func(p *ProgressTree) *CheckItem { return &p.Settlement.Statement.LoanCalculationSaved }},

	{"settlement.scrivener.requested", func(p *ProgressTree) *CheckItem { return &p.Settlement.Scrivener.Requested }},
	{"settlement.scrivener.documents_shared", func(p *ProgressTree) *CheckItem { return &p.Settlement.Scrivener.DocumentsShared }},
	{"settlement.scrivener.id_document_sent", func(p *ProgressTree) *CheckItem { return &p.Settlement.Scrivener.IDDocumentSent }},
	{"settlement.scrivener.id_document_received", func(p *ProgressTree) *CheckItem { return &p.Settlement.Scrivener.IDDocumentReceived }},
	{"settlement.scrivener.id_document_returned", func(p *ProgressTree) *CheckItem { return &p.Settlement.Scrivener.IDDocumentReturned }},
	{"settlement.scrivener.no_defects", func(p *ProgressTree) *CheckItem { return &p.Settlement.Scrivener.NoDefects }},

	{"settlement.mortgage_bank.requested", func(p *ProgressTree) *CheckItem { return &p.Settlement.MortgageBank.Requested }},
	{"settlement.mortgage_bank.accepted", func(p *ProgressTree) *CheckItem { return &p.Settlement.MortgageBank.Accepted }},
	{"settlement.mortgage_bank.no_defects", func(p *ProgressTree) *CheckItem { return &p.Settlement.MortgageBank.NoDefects }},
	{"settlement.mortgage_bank.loan_calculation_saved", func(p *ProgressTree) *CheckItem { return &p.Settlement.MortgageBank.LoanCalculationSaved }},
	{"settlement.mortgage_bank.seller_payment_completed", func(p *ProgressTree) *CheckItem { return &p.Settlement.MortgageBank.SellerPaymentCompleted }},

	{"settlement.post_settlement.management_cancellation_requested", func(p *ProgressTree) *CheckItem {
		return &p.Settlement.PostSettlement.ManagementCancellationRequested
	}},
	{"settlement.post_settlement.management_cancellation_completed", func(p *ProgressTree) *CheckItem {
		return &p.Settlement.PostSettlement.ManagementCancellationCompleted
	}},
	{"settlement.post_settlement.guarantee_succession_requested", func(p *ProgressTree) *CheckItem {
		return &p.Settlement.PostSettlement.GuaranteeSuccessionRequested
	}},
	{"settlement.post_settlement.guarantee_succession_completed", func(p *ProgressTree) *CheckItem {
		return &p.Settlement.PostSettlement.GuaranteeSuccessionCompleted
	}},
	{"settlement.post_settlement.key_received", func(p *ProgressTree) *CheckItem { return &p.Settlement.PostSettlement.KeyReceived }},
	{"settlement.post_settlement.key_sent", func(p *ProgressTree) *CheckItem { return &p.Settlement.PostSettlement.KeySent }},
	{"settlement.post_settlement.account_transfer_received", func(p *ProgressTree) *CheckItem {
		return &p.Settlement.PostSettlement.AccountTransferReceived
	}},
	{"settlement.post_settlement.account_transfer_sent", func(p *ProgressTree) *CheckItem {
		return &p.Settlement.PostSettlement.AccountTransferSent
	}},
	{"settlement.post_settlement.transaction_ledger", func(p *ProgressTree) *CheckItem { return &p.Settlement.PostSettlement.TransactionLedger }},
}

var documentItemPaths = []documentItemPath{
	{"document.rental.rental_contract", func(p *ProgressTree) *DocumentItem { return &p.Document.Rental.RentalContract }},
	{"document.rental.management_contract", func(p *ProgressTree) *DocumentItem { return &p.Document.Rental.ManagementContract }},
	{"document.building.important_matters", func(p *ProgressTree) *DocumentItem { return &p.Document.Building.ImportantMatters }},
	{"document.building.management_rules", func(p *ProgressTree) *DocumentItem { return &p.Document.Building.ManagementRules }},
	{"document.building.long_term_plan", func(p *ProgressTree) *DocumentItem { return &p.Document.Building.LongTermPlan }},
	{"document.building.general_meeting", func(p *ProgressTree) *DocumentItem { return &p.Document.Building.GeneralMeeting }},
	{"document.government.tax_certificate", func(p *ProgressTree) *DocumentItem { return &p.Document.Government.TaxCertificate }},
	{"document.government.building_plan", func(p *ProgressTree) *DocumentItem { return &p.Document.Government.BuildingPlan }},
	{"document.government.registry_record", func(p *ProgressTree) *DocumentItem { return &p.Document.Government.RegistryRecord }},
	{"document.government.use_district", func(p *ProgressTree) *DocumentItem { return &p.Document.Government.UseDistrict }},
	{"document.government.road_ledger", func(p *ProgressTree) *DocumentItem { return &p.Document.Government.RoadLedger }},
	{"document.bank.loan_calculation", func(p *ProgressTree) *DocumentItem { return &p.Document.Bank.LoanCalculation }},
}

var stagedItemPaths = []stagedItemPath{
	{"contract.buyer.sales_contract", func(p *ProgressTree) *StagedCheckItem { return &p.Contract.Buyer.SalesContract }},
	{"contract.buyer.important_matters", func(p *ProgressTree) *StagedCheckItem { return &p.Contract.Buyer.ImportantMatters }},
	{"settlement.statement.buyer_statement", func(p *ProgressTree) *StagedCheckItem { return &p.Settlement.Statement.BuyerStatement }},
	{"settlement.statement.seller_statement", func(p *ProgressTree) *StagedCheckItem { return &p.Settlement.Statement.SellerStatement }},
}

var (
	checkItemIndex    = map[string]checkItemPath{}
	documentItemIndex = map[string]documentItemPath{}
	stagedItemIndex   = map[string]stagedItemPath{}
)

func init() {
	for _, p := range checkItemPaths {
		checkItemIndex[p.path] = p
	}
	for _, p := range documentItemPaths {
		documentItemIndex[p.path] = p
	}
	for _, p := range stagedItemPaths {
		stagedItemIndex[p.path] = p
	}
}

// ProgressPaths lists the addressable leaves of a ProgressTree by kind.
type ProgressPaths struct {
	CheckItems    []string `json:"check_items"`
	DocumentItems []string `json:"document_items"`
	StagedItems   []string `json:"staged_items"`
	Stages        []Stage  `json:"stages"`
}

func AllProgressPaths() ProgressPaths {
	out := ProgressPaths{Stages: Stages()}
	for _, p := range checkItemPaths {
		out.CheckItems = append(out.CheckItems, p.path)
	}
	for _, p := range documentItemPaths {
		out.DocumentItems = append(out.DocumentItems, p.path)
	}
	for _, p := range stagedItemPaths {
		out.StagedItems = append(out.StagedItems, p.path)
	}
	return out
}

// CheckItem returns the leaf at path.
func (p ProgressTree) CheckItem(path string) (CheckItem, error) {
	entry, ok := checkItemIndex[path]
	if !ok {
		return CheckItem{}, fmt.Errorf("%w: %s", utils.ErrUnknownProgressItem, path)
	}
	return *entry.at(&p), nil
}

// WithCheckItem returns a copy of p with the check item at path set.
func (p ProgressTree) WithCheckItem(path string, checked bool, by string, at time.Time) (ProgressTree, error) {
	entry, ok := checkItemIndex[path]
	if !ok {
		return p, fmt.Errorf("%w: %s", utils.ErrUnknownProgressItem, path)
	}
	leaf := entry.at(&p)
	*leaf = leaf.Set(checked, by, at)
	return p, nil
}

// WithDocumentItem returns a copy of p with the document item at path set.
func (p ProgressTree) WithDocumentItem(path string, status DocumentItemStatus, by string, at time.Time) (ProgressTree, error) {
	entry, ok := documentItemIndex[path]
	if !ok {
		return p, fmt.Errorf("%w: %s", utils.ErrUnknownProgressItem, path)
	}
	if !status.Valid() {
		return p, fmt.Errorf("%w: document status %q", utils.ErrInvalidStatus, status)
	}
	leaf := entry.at(&p)
	*leaf = leaf.Set(status, by, at)
	return p, nil
}

// WithStage returns a copy of p with one stage of the staged item at path set.
func (p ProgressTree) WithStage(path string, stage Stage, checked bool, by string, at time.Time) (ProgressTree, error) {
	entry, ok := stagedItemIndex[path]
	if !ok {
		return p, fmt.Errorf("%w: %s", utils.ErrUnknownProgressItem, path)
	}
	staged := entry.at(&p)
	current, ok := staged.Stage(stage)
	if !ok {
		return p, fmt.Errorf("%w: stage %q", utils.ErrUnknownProgressItem, stage)
	}
	updated, err := staged.WithStage(stage, current.Set(checked, by, at))
	if err != nil {
		return p, err
	}
	*staged = updated
	return p, nil
}

// DomainSummary counts finished leaves. Each stage of a staged item counts
// as one leaf; a document counts as done once acquired or not applicable.
type DomainSummary struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

type ProgressSummary struct {
	Contract   DomainSummary `json:"contract"`
	Document   DomainSummary `json:"document"`
	Settlement DomainSummary `json:"settlement"`
}

func (p ProgressTree) Summary() ProgressSummary {
	var out ProgressSummary
	pick := func(path string) *DomainSummary {
		switch domainOf(path) {
		case DomainContract:
			return &out.Contract
		case DomainDocument:
			return &out.Document
		default:
			return &out.Settlement
		}
	}

	for _, e := range checkItemPaths {
		s := pick(e.path)
		s.Total++
		if e.at(&p).Checked {
			s.Done++
		}
	}
	for _, e := range documentItemPaths {
		s := pick(e.path)
		s.Total++
		if e.at(&p).Status.Settled() {
			s.Done++
		}
	}
	for _, e := range stagedItemPaths {
		s := pick(e.path)
		s.Total += len(Stages())
		s.Done += e.at(&p).CompletedStages()
	}
	return out
}

// Validate checks every leaf's audit pair against its state.
func (p ProgressTree) Validate() error {
	for _, e := range checkItemPaths {
		if err := e.at(&p).validate(); err != nil {
			return fmt.Errorf("%s: %w", e.path, err)
		}
	}
	for _, e := range documentItemPaths {
		if err := e.at(&p).validate(); err != nil {
			return fmt.Errorf("%s: %w", e.path, err)
		}
	}
	for _, e := range stagedItemPaths {
		if err := e.at(&p).validate(); err != nil {
			return fmt.Errorf("%s: %w", e.path, err)
		}
	}
	return nil
}

func domainOf(path string) string {
	domain, _, _ := strings.Cut(path, ".")
	return domain
}
