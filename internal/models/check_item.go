package models

import (
	"fmt"
	"time"

	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// CheckItem is a binary checklist leaf. CompletedAt and CompletedBy are set
// exactly when Checked is true.
type CheckItem struct {
	Checked     bool       `json:"checked"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy *string    `json:"completed_by,omitempty"`
}

func EmptyCheckItem() CheckItem {
	return CheckItem{}
}

// Set returns the leaf that results from checking or unchecking c. Checking
// an already checked item keeps its original audit pair.
func (c CheckItem) Set(checked bool, by string, at time.Time) CheckItem {
	if !checked {
		return EmptyCheckItem()
	}
	if c.Checked && c.CompletedAt != nil {
		return c
	}
	at = at.UTC()
	return CheckItem{Checked: true, CompletedAt: &at, CompletedBy: &by}
}

func (c CheckItem) validate() error {
	hasAudit := c.CompletedAt != nil || c.CompletedBy != nil
	if c.Checked != hasAudit {
		return fmt.Errorf("checked=%t with audit present=%t", c.Checked, hasAudit)
	}
	if c.Checked && (c.CompletedAt == nil || c.CompletedBy == nil) {
		return fmt.Errorf("checked item missing half of its audit pair")
	}
	return nil
}

// DocumentItemStatus tracks one due-diligence document.
type DocumentItemStatus string

const (
	DocumentItemBlank         DocumentItemStatus = "BLANK"
	DocumentItemRequested     DocumentItemStatus = "REQUESTED"
	DocumentItemAcquired      DocumentItemStatus = "ACQUIRED"
	DocumentItemNotApplicable DocumentItemStatus = "NOT_APPLICABLE"
)

var documentItemLabels = map[DocumentItemStatus]string{
	DocumentItemBlank:         "空欄",
	DocumentItemRequested:     "依頼",
	DocumentItemAcquired:      "取得完了",
	DocumentItemNotApplicable: "書類なし",
}

// DocumentItemStatuses lists every document item status in display order.
func DocumentItemStatuses() []DocumentItemStatus {
	return []DocumentItemStatus{DocumentItemBlank, DocumentItemRequested, DocumentItemAcquired, DocumentItemNotApplicable}
}

// ParseDocumentItemStatus accepts either the code or the Japanese label.
func ParseDocumentItemStatus(v string) (DocumentItemStatus, error) {
	for _, s := range DocumentItemStatuses() {
		if string(s) == v || s.Label() == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: document item status %q", utils.ErrInvalidStatus, v)
}

func (s DocumentItemStatus) Valid() bool {
	_, ok := documentItemLabels[s]
	return ok
}

func (s DocumentItemStatus) Label() string {
	return documentItemLabels[s]
}

// Settled reports whether the document needs no further chasing.
func (s DocumentItemStatus) Settled() bool {
	return s == DocumentItemAcquired || s == DocumentItemNotApplicable
}

// DocumentItem is an enumerated checklist leaf. UpdatedAt and UpdatedBy are
// set exactly when Status is not BLANK.
type DocumentItem struct {
	Status    DocumentItemStatus `json:"status"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
	UpdatedBy *string            `json:"updated_by,omitempty"`
}

func EmptyDocumentItem() DocumentItem {
	return DocumentItem{Status: DocumentItemBlank}
}

// Set returns the leaf with the new status. Re-applying the current status
// keeps the audit pair; BLANK clears it.
func (d DocumentItem) Set(status DocumentItemStatus, by string, at time.Time) DocumentItem {
	if status == DocumentItemBlank {
		return EmptyDocumentItem()
	}
	if d.Status == status && d.UpdatedAt != nil {
		return d
	}
	at = at.UTC()
	return DocumentItem{Status: status, UpdatedAt: &at, UpdatedBy: &by}
}

func (d DocumentItem) validate() error {
	if !d.Status.Valid() {
		return fmt.Errorf("unknown document status %q", d.Status)
	}
	hasAudit := d.UpdatedAt != nil && d.UpdatedBy != nil
	partial := (d.UpdatedAt != nil) != (d.UpdatedBy != nil)
	if partial {
		return fmt.Errorf("document item has half of its audit pair")
	}
	if (d.Status != DocumentItemBlank) != hasAudit {
		return fmt.Errorf("status=%s with audit present=%t", d.Status, hasAudit)
	}
	return nil
}

// Stage names one step of a StagedCheckItem, in workflow order.
type Stage string

const (
	StageCreated     Stage = "created"
	StageSent        Stage = "sent"
	StageCBCompleted Stage = "cb_completed"
	StageCRCompleted Stage = "cr_completed"
)

// Stages lists every stage in workflow order.
func Stages() []Stage {
	return []Stage{StageCreated, StageSent, StageCBCompleted, StageCRCompleted}
}

func (s Stage) Valid() bool {
	switch s {
	case StageCreated, StageSent, StageCBCompleted, StageCRCompleted:
		return true
	}
	return false
}

// StagedCheckItem tracks a document through creation, sending and counter-
// party verification. Stages may be completed in any order.
type StagedCheckItem struct {
	Created     CheckItem `json:"created"`
	Sent        CheckItem `json:"sent"`
	CBCompleted CheckItem `json:"cb_completed"`
	CRCompleted CheckItem `json:"cr_completed"`
}

func EmptyStagedProgress() StagedCheckItem {
	return StagedCheckItem{
		Created:     EmptyCheckItem(),
		Sent:        EmptyCheckItem(),
		CBCompleted: EmptyCheckItem(),
		CRCompleted: EmptyCheckItem(),
	}
}

func (s StagedCheckItem) Stage(st Stage) (CheckItem, bool) {
	switch st {
	case StageCreated:
		return s.Created, true
	case StageSent:
		return s.Sent, true
	case StageCBCompleted:
		return s.CBCompleted, true
	case StageCRCompleted:
		return s.CRCompleted, true
	}
	return CheckItem{}, false
}

// WithStage returns a copy of s with one stage replaced.
func (s StagedCheckItem) WithStage(st Stage, item CheckItem) (StagedCheckItem, error) {
	switch st {
	case StageCreated:
		s.Created = item
	case StageSent:
		s.Sent = item
	case StageCBCompleted:
		s.CBCompleted = item
	case StageCRCompleted:
		s.CRCompleted = item
	default:
		return s, fmt.Errorf("unknown stage %q", st)
	}
	return s, nil
}

// CompletedStages counts checked stages.
func (s StagedCheckItem) CompletedStages() int {
	n := 0
	for _, st := range Stages() {
		if item, _ := s.Stage(st); item.Checked {
			n++
		}
	}
	return n
}

func (s StagedCheckItem) validate() error {
	for _, st := range Stages() {
		item, _ := s.Stage(st)
		if err := item.validate(); err != nil {
			return fmt.Errorf("%s: %w", st, err)
		}
	}
	return nil
}
