package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dateexpr"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/repositories"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
	internal_utils "github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// DealFilter narrows List. Zero values mean "no restriction".
type DealFilter struct {
	Statuses       []models.BusinessStatus
	AccountCompany *models.AccountCompany
	Limit          int
}

type DealRepository interface {
	Create(ctx context.Context, d *models.Deal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Deal, error)
	List(ctx context.Context, f DealFilter) ([]*models.Deal, error)
	ListSettlingBetween(ctx context.Context, from, to time.Time) ([]*models.Deal, error)

	UpdateIfVersion(ctx context.Context, d *models.Deal, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Deal) error) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type dealRepo struct {
	*repositories.BaseVersionedRepo[*models.Deal]
	db  repositories.DB
	loc *time.Location
}

// NewDealRepository returns a pgx-backed DealRepository. Stored DATE values
// are read back as midnight in the business timezone.
func NewDealRepository(db repositories.DB) DealRepository {
	r := &dealRepo{db: db, loc: internal_utils.BusinessLocation()}
	selectStmt := baseSelectDeal() + " WHERE id=$1"
	r.BaseVersionedRepo = repositories.NewBaseRepo(db, selectStmt, r.scanDeal, r.UpdateIfVersion)
	return r
}

func (r *dealRepo) Create(ctx context.Context, d *models.Deal) error {
	progress, legacy, err := marshalDealJSON(d)
	if err != nil {
		return err
	}
	settlementText, settlementDate := settlementColumns(d.SettlementDate)

	_, err = r.db.Exec(ctx, `
        INSERT INTO deals (
            id, assignees, property_name, room_number, owner_name, lead_source,
            acquisition_amount, exit_amount, commission_total, deposit_from_buyer,
            contract_type,
            acquisition_contract_text, acquisition_contract_date,
            resale_contract_text, resale_contract_date,
            settlement_text, settlement_date,
            buyer_company, intermediary_company, broker_company, mortgage_bank,
            settlement_account_company, settlement_bank_account,
            progress, business_status, document_status, legacy_flags, memo,
            created_at, updated_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,
            $7,$8,$9,$10,
            $11,
            $12,$13,
            $14,$15,
            $16,$17,
            $18,$19,$20,$21,
            $22,$23,
            $24,$25,$26,$27,$28,
            NOW(), NOW(), 1
        )
    `,
		d.ID, d.Assignees, d.PropertyName, d.RoomNumber, d.OwnerName, d.LeadSource,
		d.AcquisitionAmount, d.ExitAmount, d.CommissionTotal, d.DepositFromBuyer,
		string(d.ContractType),
		d.AcquisitionContractDate.Text, d.AcquisitionContractDate.Date,
		d.ResaleContractDate.Text, d.ResaleContractDate.Date,
		settlementText, settlementDate,
		d.BuyerCompany, string(d.IntermediaryCompany), d.BrokerCompany, d.MortgageBank,
		string(d.SettlementAccountCompany), string(d.SettlementBankAccount),
		progress, string(d.BusinessStatus), string(d.DocumentStatus), legacy, d.Memo,
	)
	if err != nil {
		return err
	}
	d.SetRowVersion(1)
	return nil
}

func (r *dealRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Deal, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *dealRepo) List(ctx context.Context, f DealFilter) ([]*models.Deal, error) {
	var (
		where []string
		args  []any
	)
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		where = append(where, fmt.Sprintf("business_status = ANY($%d)", len(args)))
	}
	if f.AccountCompany != nil {
		args = append(args, string(*f.AccountCompany))
		where = append(where, fmt.Sprintf("settlement_account_company = $%d", len(args)))
	}

	sql := baseSelectDeal()
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY created_at, id"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	return r.queryDeals(ctx, sql, args...)
}

// ListSettlingBetween returns confirmed deals whose resolved settlement day
// lies in [from, to].
func (r *dealRepo) ListSettlingBetween(ctx context.Context, from, to time.Time) ([]*models.Deal, error) {
	return r.queryDeals(ctx, baseSelectDeal()+`
        WHERE business_status <> $1
          AND settlement_date BETWEEN $2 AND $3
        ORDER BY settlement_date, id`,
		string(models.BusinessStatusUnconfirmed), from, to,
	)
}

func (r *dealRepo) UpdateIfVersion(ctx context.Context, d *models.Deal, expected int64) (pgconn.CommandTag, error) {
	progress, legacy, err := marshalDealJSON(d)
	if err != nil {
		return nil, err
	}
	settlementText, settlementDate := settlementColumns(d.SettlementDate)

	return r.db.Exec(ctx, `
        UPDATE deals SET
            assignees=$1, property_name=$2, room_number=$3, owner_name=$4, lead_source=$5,
            acquisition_amount=$6, exit_amount=$7, commission_total=$8, deposit_from_buyer=$9,
            contract_type=$10,
            acquisition_contract_text=$11, acquisition_contract_date=$12,
            resale_contract_text=$13, resale_contract_date=$14,
            settlement_text=$15, settlement_date=$16,
            buyer_company=$17, intermediary_company=$18, broker_company=$19, mortgage_bank=$20,
            settlement_account_company=$21, settlement_bank_account=$22,
            progress=$23, business_status=$24, document_status=$25, legacy_flags=$26, memo=$27,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$28 AND row_version=$29
    `,
		d.Assignees, d.PropertyName, d.RoomNumber, d.OwnerName, d.LeadSource,
		d.AcquisitionAmount, d.ExitAmount, d.CommissionTotal, d.DepositFromBuyer,
		string(d.ContractType),
		d.AcquisitionContractDate.Text, d.AcquisitionContractDate.Date,
		d.ResaleContractDate.Text, d.ResaleContractDate.Date,
		settlementText, settlementDate,
		d.BuyerCompany, string(d.IntermediaryCompany), d.BrokerCompany, d.MortgageBank,
		string(d.SettlementAccountCompany), string(d.SettlementBankAccount),
		progress, string(d.BusinessStatus), string(d.DocumentStatus), legacy, d.Memo,
		d.ID, expected,
	)
}

func (r *dealRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Deal) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate)
}

func (r *dealRepo) queryDeals(ctx context.Context, sql string, args ...any) ([]*models.Deal, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Deal{}
	for rows.Next() {
		d, err := r.scanDeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func baseSelectDeal() string {
	return `
        SELECT
            id, assignees, property_name, room_number, owner_name, lead_source,
            acquisition_amount, exit_amount, commission_total, deposit_from_buyer,
            contract_type,
            acquisition_contract_text, acquisition_contract_date,
            resale_contract_text, resale_contract_date,
            settlement_text, settlement_date,
            buyer_company, intermediary_company, broker_company, mortgage_bank,
            settlement_account_company, settlement_bank_account,
            progress, business_status, document_status, legacy_flags, memo,
            created_at, updated_at, row_version
        FROM deals
    `
}

func (r *dealRepo) scanDeal(row pgx.Row) (*models.Deal, error) {
	var (
		d                               models.Deal
		contractType, intermediary      string
		acqText, resaleText             string
		acqDate, resaleDate, settleDate *time.Time
		settleText                      *string
		accountCompany, bankAccount     string
		businessStatus, documentStatus  string
		progressJSON, legacyJSON        []byte
	)
	err := row.Scan(
		&d.ID, &d.Assignees, &d.PropertyName, &d.RoomNumber, &d.OwnerName, &d.LeadSource,
		&d.AcquisitionAmount, &d.ExitAmount, &d.CommissionTotal, &d.DepositFromBuyer,
		&contractType,
		&acqText, &acqDate,
		&resaleText, &resaleDate,
		&settleText, &settleDate,
		&d.BuyerCompany, &intermediary, &d.BrokerCompany, &d.MortgageBank,
		&accountCompany, &bankAccount,
		&progressJSON, &businessStatus, &documentStatus, &legacyJSON, &d.Memo,
		&d.CreatedAt, &d.UpdatedAt, &d.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	d.ContractType = models.ContractType(contractType)
	d.IntermediaryCompany = models.IntermediaryCompany(intermediary)
	d.AcquisitionContractDate = dateexpr.Stored(acqText, acqDate, r.loc)
	d.ResaleContractDate = dateexpr.Stored(resaleText, resaleDate, r.loc)
	if settleText != nil {
		e := dateexpr.Stored(*settleText, settleDate, r.loc)
		d.SettlementDate = &e
	}
	d.SettlementAccountCompany = models.AccountCompany(accountCompany)
	d.SettlementBankAccount = models.BankAccount(bankAccount)
	d.BusinessStatus = models.BusinessStatus(businessStatus)
	d.DocumentStatus = models.DocumentStatus(documentStatus)

	if err := json.Unmarshal(progressJSON, &d.Progress); err != nil {
		return nil, fmt.Errorf("decode progress for deal %s: %w", d.ID, err)
	}
	if len(legacyJSON) > 0 {
		if err := json.Unmarshal(legacyJSON, &d.LegacyFlags); err != nil {
			return nil, fmt.Errorf("decode legacy flags for deal %s: %w", d.ID, err)
		}
	}
	if err := d.Progress.Validate(); err != nil {
		utils.Logger.WithError(err).Warnf("deal %s has an inconsistent progress tree", d.ID)
	}
	return &d, nil
}

func marshalDealJSON(d *models.Deal) ([]byte, []byte, error) {
	progress, err := json.Marshal(d.Progress)
	if err != nil {
		return nil, nil, fmt.Errorf("encode progress: %w", err)
	}
	legacy, err := json.Marshal(d.LegacyFlags)
	if err != nil {
		return nil, nil, fmt.Errorf("encode legacy flags: %w", err)
	}
	return progress, legacy, nil
}

func settlementColumns(e *dateexpr.Expression) (*string, *time.Time) {
	if e == nil {
		return nil, nil
	}
	text := e.Text
	return &text, e.Date
}
