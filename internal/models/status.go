package models

import (
	"fmt"

	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// BusinessStatus is the resale-side lifecycle stage of a deal.
type BusinessStatus string

const (
	BusinessStatusUnconfirmed                    BusinessStatus = "UNCONFIRMED"
	BusinessStatusAwaitingVerification           BusinessStatus = "BUYER_CONFIRMED_AWAITING_VERIFICATION"
	BusinessStatusAwaitingContract               BusinessStatus = "BUYER_CONFIRMED_AWAITING_CONTRACT"
	BusinessStatusContractDoneAwaitingSettleDate BusinessStatus = "BUYER_CONTRACT_DONE_AWAITING_SETTLEMENT_DATE"
	BusinessStatusSettleDateSetAwaitingStatement BusinessStatus = "SETTLEMENT_DATE_SET_AWAITING_STATEMENT"
	BusinessStatusStatementDoneAwaitingSettle    BusinessStatus = "STATEMENT_DONE_AWAITING_SETTLEMENT"
	BusinessStatusSettlementCompleted            BusinessStatus = "SETTLEMENT_COMPLETED"
)

var businessStatusOrder = []BusinessStatus{
	BusinessStatusUnconfirmed,
	BusinessStatusAwaitingVerification,
	BusinessStatusAwaitingContract,
	BusinessStatusContractDoneAwaitingSettleDate,
	BusinessStatusSettleDateSetAwaitingStatement,
	BusinessStatusStatementDoneAwaitingSettle,
	BusinessStatusSettlementCompleted,
}

var businessStatusLabels = map[BusinessStatus]string{
	BusinessStatusUnconfirmed:                    "BC確定前",
	BusinessStatusAwaitingVerification:           "BC確定 CB待ち",
	BusinessStatusAwaitingContract:               "BC確定 契約待ち",
	BusinessStatusContractDoneAwaitingSettleDate: "BC完了 決済日確定待ち",
	BusinessStatusSettleDateSetAwaitingStatement: "決済日確定 精算書待ち",
	BusinessStatusStatementDoneAwaitingSettle:    "精算書完了 決済待ち",
	BusinessStatusSettlementCompleted:            "決済完了",
}

// BusinessStatuses lists every business status in lifecycle order.
func BusinessStatuses() []BusinessStatus {
	return append([]BusinessStatus(nil), businessStatusOrder...)
}

func (s BusinessStatus) Valid() bool {
	_, ok := businessStatusLabels[s]
	return ok
}

func (s BusinessStatus) Label() string {
	return businessStatusLabels[s]
}

// Rank is the zero-based lifecycle position, or -1 for unknown values.
func (s BusinessStatus) Rank() int {
	for i, v := range businessStatusOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// Category groups business statuses for listing and reporting.
type Category string

const (
	CategoryUnconfirmed Category = "unconfirmed"
	CategoryInProgress  Category = "in_progress"
	CategoryCompleted   Category = "completed"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryUnconfirmed, CategoryInProgress, CategoryCompleted:
		return true
	}
	return false
}

func (s BusinessStatus) Category() Category {
	switch s {
	case BusinessStatusUnconfirmed:
		return CategoryUnconfirmed
	case BusinessStatusSettlementCompleted:
		return CategoryCompleted
	default:
		return CategoryInProgress
	}
}

// Emphasis is the display weight of a status badge.
type Emphasis string

const (
	EmphasisPending   Emphasis = "pending"
	EmphasisSecondary Emphasis = "secondary"
	EmphasisFinal     Emphasis = "final"
)

func (s BusinessStatus) Emphasis() Emphasis {
	switch s {
	case BusinessStatusUnconfirmed:
		return EmphasisPending
	case BusinessStatusAwaitingVerification,
		BusinessStatusAwaitingContract,
		BusinessStatusContractDoneAwaitingSettleDate,
		BusinessStatusSettleDateSetAwaitingStatement,
		BusinessStatusStatementDoneAwaitingSettle:
		return EmphasisSecondary
	case BusinessStatusSettlementCompleted:
		return EmphasisFinal
	}
	return EmphasisPending
}

// ParseBusinessStatus accepts either the code or the Japanese label.
func ParseBusinessStatus(v string) (BusinessStatus, error) {
	for _, s := range businessStatusOrder {
		if string(s) == v || s.Label() == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: business status %q", utils.ErrInvalidStatus, v)
}

// DocumentStatus summarises due-diligence document collection for a deal.
type DocumentStatus string

const (
	DocumentStatusRequestPending DocumentStatus = "REQUEST_PENDING"
	DocumentStatusAcquiring      DocumentStatus = "ACQUIRING"
	DocumentStatusAllAcquired    DocumentStatus = "ALL_ACQUIRED"
)

var documentStatusOrder = []DocumentStatus{
	DocumentStatusRequestPending,
	DocumentStatusAcquiring,
	DocumentStatusAllAcquired,
}

var documentStatusLabels = map[DocumentStatus]string{
	DocumentStatusRequestPending: "書類依頼待ち",
	DocumentStatusAcquiring:      "書類取得中",
	DocumentStatusAllAcquired:    "全書類取得完了",
}

func DocumentStatuses() []DocumentStatus {
	return append([]DocumentStatus(nil), documentStatusOrder...)
}

func (s DocumentStatus) Valid() bool {
	_, ok := documentStatusLabels[s]
	return ok
}

func (s DocumentStatus) Label() string {
	return documentStatusLabels[s]
}

func (s DocumentStatus) Emphasis() Emphasis {
	switch s {
	case DocumentStatusRequestPending:
		return EmphasisPending
	case DocumentStatusAcquiring:
		return EmphasisSecondary
	case DocumentStatusAllAcquired:
		return EmphasisFinal
	}
	return EmphasisPending
}

func ParseDocumentStatus(v string) (DocumentStatus, error) {
	for _, s := range documentStatusOrder {
		if string(s) == v || s.Label() == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: document status %q", utils.ErrInvalidStatus, v)
}
