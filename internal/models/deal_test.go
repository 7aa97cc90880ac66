package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dateexpr"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

var refNow = time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC)

func newTestDeal() *Deal {
	return NewDeal(uuid.New(), []string{"牟田"}, dateexpr.Parse("2025年8月10日", refNow))
}

func TestNewDealDefaults(t *testing.T) {
	d := newTestDeal()
	assert.Equal(t, BusinessStatusUnconfirmed, d.BusinessStatus)
	assert.Equal(t, DocumentStatusRequestPending, d.DocumentStatus)
	assert.Nil(t, d.SettlementDate)
	assert.Equal(t, EmptyProgressTree(), d.Progress)
	require.NoError(t, d.Validate())
}

func TestProfitTracksInputs(t *testing.T) {
	d := newTestDeal()
	d.ExitAmount = 20_050_000
	d.AcquisitionAmount = 16_520_000
	d.CommissionTotal = 400_000
	assert.EqualValues(t, 3_930_000, d.Profit())

	d.ExitAmount = 21_000_000
	assert.EqualValues(t, 4_880_000, d.Profit())

	d.CommissionTotal = 0
	d.AcquisitionAmount = 22_000_000
	assert.EqualValues(t, -1_000_000, d.Profit())
}

func TestSetAssigneesNormalises(t *testing.T) {
	d := newTestDeal()
	d.SetAssignees([]string{" 清原 ", "堀", "清原", ""})
	assert.Equal(t, []string{"清原", "堀"}, d.Assignees)

	d.SetAssignees(nil)
	assert.ErrorIs(t, d.Validate(), utils.ErrMissingAssignee)
}

func TestStatusSettlementInvariant(t *testing.T) {
	d := newTestDeal()

	err := d.ChangeBusinessStatus(BusinessStatusAwaitingVerification, nil)
	assert.ErrorIs(t, err, utils.ErrSettlementDateRequired)
	assert.Equal(t, BusinessStatusUnconfirmed, d.BusinessStatus, "failed change must not mutate")

	blank := dateexpr.Parse("  ", refNow)
	err = d.ChangeBusinessStatus(BusinessStatusAwaitingVerification, &blank)
	assert.ErrorIs(t, err, utils.ErrSettlementDateRequired)

	undecided := dateexpr.Parse("10月予定", refNow)
	require.NoError(t, d.ChangeBusinessStatus(BusinessStatusAwaitingVerification, &undecided))
	require.NotNil(t, d.SettlementDate)
	assert.Equal(t, "2025-10-31", d.SettlementDate.Day())
	require.NoError(t, d.Validate())

	// later stages keep the existing date when none is supplied
	require.NoError(t, d.ChangeBusinessStatus(BusinessStatusStatementDoneAwaitingSettle, nil))
	assert.Equal(t, "10月予定", d.SettlementDate.Text)

	settled := dateexpr.Parse("2025-09-08", refNow)
	require.NoError(t, d.SetSettlementDate(settled))
	assert.Equal(t, "2025-09-08", d.SettlementDate.Day())

	require.NoError(t, d.ChangeBusinessStatus(BusinessStatusUnconfirmed, nil))
	assert.Nil(t, d.SettlementDate)
	require.NoError(t, d.Validate())

	err = d.ChangeBusinessStatus(BusinessStatusUnconfirmed, &settled)
	assert.ErrorIs(t, err, utils.ErrSettlementDateNotAllowed)

	err = d.SetSettlementDate(settled)
	assert.ErrorIs(t, err, utils.ErrSettlementDateNotAllowed)

	err = d.ChangeBusinessStatus("ON_HOLD", &settled)
	assert.ErrorIs(t, err, utils.ErrInvalidStatus)
}

func TestUnresolvedSettlementTextStillConfirms(t *testing.T) {
	d := newTestDeal()
	pending := dateexpr.Parse("調整中", refNow)
	require.NoError(t, d.ChangeBusinessStatus(BusinessStatusAwaitingContract, &pending))
	require.NotNil(t, d.SettlementDate)
	assert.Nil(t, d.ResolvedSettlementDay())
	assert.Nil(t, d.ClassificationDate())
	require.NoError(t, d.Validate())
}

func TestSettlementDateIsCopied(t *testing.T) {
	d := newTestDeal()
	e := dateexpr.Parse("2025年9月8日", refNow)
	require.NoError(t, d.ChangeBusinessStatus(BusinessStatusAwaitingContract, &e))
	e.Text = "mutated"
	assert.Equal(t, "2025年9月8日", d.SettlementDate.Text)
}

func TestAccountCompanyChangeClearsBankAccount(t *testing.T) {
	d := newTestDeal()

	err := d.SetBankAccount("GMOメイン")
	assert.ErrorIs(t, err, utils.ErrBankAccountMismatch, "no company chosen yet")

	require.NoError(t, d.SetAccountCompany(AccountCompanyMS))
	require.NoError(t, d.SetBankAccount("ペイペイ②"))
	assert.Equal(t, BankAccount("ペイペイ②"), d.SettlementBankAccount)

	// same company keeps the account
	require.NoError(t, d.SetAccountCompany(AccountCompanyMS))
	assert.Equal(t, BankAccount("ペイペイ②"), d.SettlementBankAccount)

	require.NoError(t, d.SetAccountCompany(AccountCompanyLife))
	assert.Equal(t, BankAccount(""), d.SettlementBankAccount)

	err = d.SetBankAccount("ペイペイ②")
	assert.ErrorIs(t, err, utils.ErrBankAccountMismatch)

	require.NoError(t, d.SetBankAccount("GMOサブ"))
	require.NoError(t, d.Validate())

	err = d.SetAccountCompany("ACME")
	assert.ErrorIs(t, err, utils.ErrInvalidAccountCompany)
	assert.Equal(t, AccountCompanyLife, d.SettlementAccountCompany)

	d.SettlementBankAccount = "近産"
	assert.ErrorIs(t, d.Validate(), utils.ErrBankAccountMismatch)
}

func TestClassificationDate(t *testing.T) {
	d := newTestDeal()
	require.NotNil(t, d.ClassificationDate())
	assert.Equal(t, "2025-08-10", d.ClassificationDate().Format("2006-01-02"))

	settle := dateexpr.Parse("2025-09-08", refNow)
	require.NoError(t, d.ChangeBusinessStatus(BusinessStatusSettlementCompleted, &settle))
	assert.Equal(t, "2025-09-08", d.ClassificationDate().Format("2006-01-02"))
}

func TestValidateRejectsInvariantBreaks(t *testing.T) {
	d := newTestDeal()
	d.BusinessStatus = BusinessStatusSettlementCompleted
	assert.ErrorIs(t, d.Validate(), utils.ErrSettlementDateRequired)

	d = newTestDeal()
	e := dateexpr.Parse("2025-09-08", refNow)
	d.SettlementDate = &e
	assert.ErrorIs(t, d.Validate(), utils.ErrSettlementDateNotAllowed)

	d = newTestDeal()
	d.ContractType = "LEASEBACK"
	assert.ErrorIs(t, d.Validate(), utils.ErrInvalidEnumValue)
}
