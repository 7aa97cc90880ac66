package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

func TestBusinessStatusEmphasisIsExhaustive(t *testing.T) {
	want := map[BusinessStatus]Emphasis{
		BusinessStatusUnconfirmed:                    EmphasisPending,
		BusinessStatusAwaitingVerification:           EmphasisSecondary,
		BusinessStatusAwaitingContract:               EmphasisSecondary,
		BusinessStatusContractDoneAwaitingSettleDate: EmphasisSecondary,
		BusinessStatusSettleDateSetAwaitingStatement: EmphasisSecondary,
		BusinessStatusStatementDoneAwaitingSettle:    EmphasisSecondary,
		BusinessStatusSettlementCompleted:            EmphasisFinal,
	}
	require.Len(t, BusinessStatuses(), len(want))
	for _, s := range BusinessStatuses() {
		assert.Equal(t, want[s], s.Emphasis(), s)
	}
}

func TestBusinessStatusCategory(t *testing.T) {
	assert.Equal(t, CategoryUnconfirmed, BusinessStatusUnconfirmed.Category())
	assert.Equal(t, CategoryCompleted, BusinessStatusSettlementCompleted.Category())
	for _, s := range BusinessStatuses()[1:6] {
		assert.Equal(t, CategoryInProgress, s.Category(), s)
	}
}

func TestBusinessStatusRank(t *testing.T) {
	for i, s := range BusinessStatuses() {
		assert.Equal(t, i, s.Rank())
	}
	assert.Equal(t, -1, BusinessStatus("ARCHIVED").Rank())
}

func TestParseBusinessStatus(t *testing.T) {
	s, err := ParseBusinessStatus("BC確定前")
	require.NoError(t, err)
	assert.Equal(t, BusinessStatusUnconfirmed, s)

	s, err = ParseBusinessStatus("STATEMENT_DONE_AWAITING_SETTLEMENT")
	require.NoError(t, err)
	assert.Equal(t, "精算書完了 決済待ち", s.Label())

	// labels are matched exactly, never by substring
	_, err = ParseBusinessStatus("BC確定")
	assert.ErrorIs(t, err, utils.ErrInvalidStatus)
}

func TestDocumentStatus(t *testing.T) {
	assert.Equal(t, EmphasisPending, DocumentStatusRequestPending.Emphasis())
	assert.Equal(t, EmphasisSecondary, DocumentStatusAcquiring.Emphasis())
	assert.Equal(t, EmphasisFinal, DocumentStatusAllAcquired.Emphasis())

	s, err := ParseDocumentStatus("書類取得中")
	require.NoError(t, err)
	assert.Equal(t, DocumentStatusAcquiring, s)

	_, err = ParseDocumentStatus("DONE")
	assert.ErrorIs(t, err, utils.ErrInvalidStatus)
}

func TestAccountCompanies(t *testing.T) {
	c, err := ParseAccountCompany("エムズ")
	require.NoError(t, err)
	assert.Equal(t, AccountCompanyMS, c)
	assert.Len(t, c.BankAccounts(), 8)

	c, err = ParseAccountCompany("")
	require.NoError(t, err)
	assert.Empty(t, c.BankAccounts())
	assert.True(t, c.Valid())

	assert.True(t, AccountCompanyReijit.HasBankAccount("近産"))
	assert.False(t, AccountCompanyLife.HasBankAccount("近産"))

	_, err = ParseAccountCompany("ACME")
	assert.ErrorIs(t, err, utils.ErrInvalidAccountCompany)
}

func TestClosedEnums(t *testing.T) {
	ct, err := ParseContractType("AB・BC")
	require.NoError(t, err)
	assert.Equal(t, ContractTypeABBC, ct)

	ic, err := ParseIntermediaryCompany("M'scompany")
	require.NoError(t, err)
	assert.Equal(t, IntermediaryMSCompany, ic)

	ic, err = ParseIntermediaryCompany("")
	require.NoError(t, err)
	assert.Equal(t, IntermediaryNone, ic)

	_, err = ParseIntermediaryCompany("TOUSEI")
	assert.ErrorIs(t, err, utils.ErrInvalidEnumValue)
}
