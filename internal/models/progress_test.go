package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

var checkedAt = time.Date(2025, time.January, 10, 14, 30, 0, 0, time.UTC)

func TestEmptyProgressTreeIsFullyPopulated(t *testing.T) {
	tree := EmptyProgressTree()
	require.NoError(t, tree.Validate())

	for _, p := range AllProgressPaths().DocumentItems {
		entry := documentItemIndex[p]
		assert.Equal(t, DocumentItemBlank, entry.at(&tree).Status, p)
	}

	s := tree.Summary()
	assert.Equal(t, DomainSummary{Done: 0, Total: 3 + 2*4}, s.Contract)
	assert.Equal(t, DomainSummary{Done: 0, Total: 12}, s.Document)
	assert.Equal(t, DomainSummary{Done: 0, Total: 1 + 6 + 5 + 9 + 2*4}, s.Settlement)
}

func TestCheckItemAuditPairFollowsState(t *testing.T) {
	item := EmptyCheckItem().Set(true, "牟田", checkedAt)
	require.True(t, item.Checked)
	require.NotNil(t, item.CompletedAt)
	require.NotNil(t, item.CompletedBy)
	assert.Equal(t, "牟田", *item.CompletedBy)
	assert.True(t, checkedAt.Equal(*item.CompletedAt))

	again := item.Set(true, "清原", checkedAt.Add(time.Hour))
	assert.Equal(t, "牟田", *again.CompletedBy, "re-checking keeps the original audit")

	cleared := item.Set(false, "清原", checkedAt)
	assert.Equal(t, EmptyCheckItem(), cleared)
	assert.NoError(t, cleared.validate())
}

func TestDocumentItemAuditPairFollowsState(t *testing.T) {
	item := EmptyDocumentItem().Set(DocumentItemRequested, "岩田", checkedAt)
	require.NoError(t, item.validate())
	assert.Equal(t, "岩田", *item.UpdatedBy)

	later := checkedAt.Add(48 * time.Hour)
	acquired := item.Set(DocumentItemAcquired, "堀", later)
	assert.Equal(t, DocumentItemAcquired, acquired.Status)
	assert.Equal(t, "堀", *acquired.UpdatedBy)
	assert.True(t, later.Equal(*acquired.UpdatedAt))

	blank := acquired.Set(DocumentItemBlank, "堀", later)
	assert.Equal(t, EmptyDocumentItem(), blank)
}

func TestWithCheckItemIsFunctional(t *testing.T) {
	original := EmptyProgressTree()

	updated, err := original.WithCheckItem("settlement.scrivener.requested", true, "國眼", checkedAt)
	require.NoError(t, err)

	assert.False(t, original.Settlement.Scrivener.Requested.Checked, "original tree must not change")
	assert.True(t, updated.Settlement.Scrivener.Requested.Checked)
	assert.Equal(t, 1, updated.Summary().Settlement.Done)
	require.NoError(t, updated.Validate())

	got, err := updated.CheckItem("settlement.scrivener.requested")
	require.NoError(t, err)
	assert.Equal(t, "國眼", *got.CompletedBy)

	back, err := updated.WithCheckItem("settlement.scrivener.requested", false, "國眼", checkedAt)
	require.NoError(t, err)
	assert.Equal(t, EmptyProgressTree(), back)
}

func TestWithDocumentItem(t *testing.T) {
	tree, err := EmptyProgressTree().WithDocumentItem("document.government.road_ledger", DocumentItemNotApplicable, "早川", checkedAt)
	require.NoError(t, err)
	assert.Equal(t, DocumentItemNotApplicable, tree.Document.Government.RoadLedger.Status)
	assert.Equal(t, 1, tree.Summary().Document.Done)

	_, err = tree.WithDocumentItem("document.government.road_ledger", "LOST", "早川", checkedAt)
	assert.ErrorIs(t, err, utils.ErrInvalidStatus)
}

func TestWithStageAllowsAnyOrder(t *testing.T) {
	tree, err := EmptyProgressTree().WithStage("contract.buyer.sales_contract", StageCBCompleted, true, "湊", checkedAt)
	require.NoError(t, err)

	sc := tree.Contract.Buyer.SalesContract
	assert.True(t, sc.CBCompleted.Checked)
	assert.False(t, sc.Created.Checked)
	assert.False(t, sc.Sent.Checked)
	assert.Equal(t, 1, sc.CompletedStages())
	require.NoError(t, tree.Validate())

	_, err = tree.WithStage("contract.buyer.sales_contract", "signed", true, "湊", checkedAt)
	assert.ErrorIs(t, err, utils.ErrUnknownProgressItem)
}

func TestUnknownPaths(t *testing.T) {
	tree := EmptyProgressTree()

	_, err := tree.WithCheckItem("contract.seller.nope", true, "湊", checkedAt)
	assert.ErrorIs(t, err, utils.ErrUnknownProgressItem)

	// a document path is not a check item path
	_, err = tree.WithCheckItem("document.bank.loan_calculation", true, "湊", checkedAt)
	assert.ErrorIs(t, err, utils.ErrUnknownProgressItem)

	_, err = tree.WithDocumentItem("contract.seller.contract_saved", DocumentItemAcquired, "湊", checkedAt)
	assert.ErrorIs(t, err, utils.ErrUnknownProgressItem)

	_, err = tree.WithStage("settlement.scrivener.requested", StageSent, true, "湊", checkedAt)
	assert.ErrorIs(t, err, utils.ErrUnknownProgressItem)
}

func TestEveryPathIsSettable(t *testing.T) {
	paths := AllProgressPaths()
	tree := EmptyProgressTree()
	var err error

	for _, p := range paths.CheckItems {
		tree, err = tree.WithCheckItem(p, true, "湊", checkedAt)
		require.NoError(t, err, p)
	}
	for _, p := range paths.DocumentItems {
		tree, err = tree.WithDocumentItem(p, DocumentItemAcquired, "湊", checkedAt)
		require.NoError(t, err, p)
	}
	for _, p := range paths.StagedItems {
		for _, st := range paths.Stages {
			tree, err = tree.WithStage(p, st, true, "湊", checkedAt)
			require.NoError(t, err, p)
		}
	}

	s := tree.Summary()
	assert.Equal(t, s.Contract.Total, s.Contract.Done)
	assert.Equal(t, s.Document.Total, s.Document.Done)
	assert.Equal(t, s.Settlement.Total, s.Settlement.Done)
	require.NoError(t, tree.Validate())
}

func TestValidateCatchesDesyncedAudit(t *testing.T) {
	tree := EmptyProgressTree()
	tree.Settlement.PostSettlement.KeySent.Checked = true
	assert.Error(t, tree.Validate())

	tree = EmptyProgressTree()
	by := "堀"
	tree.Document.Rental.RentalContract.UpdatedBy = &by
	assert.Error(t, tree.Validate())

	tree = EmptyProgressTree()
	tree.Document.Bank.LoanCalculation.Status = ""
	assert.Error(t, tree.Validate())
}

func TestProgressTreeJSONKeepsEnumCodes(t *testing.T) {
	tree, err := EmptyProgressTree().WithDocumentItem("document.building.management_rules", DocumentItemAcquired, "堀", checkedAt)
	require.NoError(t, err)

	b, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"management_rules":{"status":"ACQUIRED","updated_at":"2025-01-10T14:30:00Z","updated_by":"堀"}`)

	var back ProgressTree
	require.NoError(t, json.Unmarshal(b, &back))
	require.NoError(t, back.Validate())
	assert.Equal(t, DocumentItemAcquired, back.Document.Building.ManagementRules.Status)
}
