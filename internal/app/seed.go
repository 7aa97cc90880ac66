package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dateexpr"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
	internal_repositories "github.com/tk20211228/deal-flow-sample-sqlite/internal/repositories"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
	internal_utils "github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

// SentinelDealID is the first seeded deal; its presence means seeding ran.
const SentinelDealID = "eeeeeeee-eeee-4eee-8eee-000000000001"

type seedDeal struct {
	id           string
	assignees    []string
	property     string
	room         string
	owner        string
	leadSource   string
	acquisition  int64
	exit         int64
	commission   int64
	deposit      int64
	contractType models.ContractType
	acquiredOn   string
	resaleOn     string
	settlement   string
	buyer        string
	intermediary models.IntermediaryCompany
	broker       string
	mortgageBank string
	company      models.AccountCompany
	bankAccount  models.BankAccount
	legacy       models.LegacyFlags
	memo         string
	status       models.BusinessStatus
	docStatus    models.DocumentStatus
}

var settledFlags = models.LegacyFlags{OwnershipTransfer: true, AccountTransfer: true, DocumentSent: true, TransactionLedger: true}

var seedDeals = []seedDeal{
	// unconfirmed pipeline
	{id: SentinelDealID, assignees: []string{"湊", "岩田"}, property: "エスリード神戸ハーバークロス", room: "605", owner: "米川哲治", leadSource: "反響",
		acquisition: 12_000_000, exit: 14_800_000, commission: 300_000, contractType: models.ContractTypeLawyer, acquiredOn: "2025-08-10",
		intermediary: models.IntermediaryMSCompany, broker: "TOUSEI", memo: "弁護士から連絡あり",
		status: models.BusinessStatusUnconfirmed, docStatus: models.DocumentStatusRequestPending},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000002", assignees: []string{"岩田"}, property: "LANDIC O2227", room: "901", owner: "宮川洋平", leadSource: "テレアポ",
		acquisition: 12_500_000, exit: 16_000_000, commission: 400_000, contractType: models.ContractTypeLawyer, acquiredOn: "2025-08-15",
		intermediary: models.IntermediaryMSCompany, broker: "TOUSEI", memo: "重調51,700円",
		status: models.BusinessStatusUnconfirmed, docStatus: models.DocumentStatusAcquiring},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000003", assignees: []string{"清原", "堀"}, property: "アドバンス心斎橋ラシュレ", room: "305", owner: "倉田怜輝", leadSource: "DM",
		acquisition: 12_800_000, exit: 15_300_000, commission: 240_000, contractType: models.ContractTypeBreachScheduled, acquiredOn: "2025-08-20",
		intermediary: models.IntermediaryMSCompany, broker: "レイジット", memo: "違約予定",
		status: models.BusinessStatusUnconfirmed, docStatus: models.DocumentStatusRequestPending},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000004", assignees: []string{"薮田", "早川"}, property: "MAXIV八王子DUE", room: "404", owner: "永田滉基", leadSource: "紹介",
		acquisition: 11_500_000, exit: 11_500_000, commission: 445_500, contractType: models.ContractTypeABBC, acquiredOn: "2025-08-25",
		intermediary: models.IntermediaryMSCompany, broker: "TOUSEI",
		status: models.BusinessStatusUnconfirmed, docStatus: models.DocumentStatusAcquiring},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000005", assignees: []string{"近藤", "小林"}, property: "エステムコート横濱大通り公園", room: "605", owner: "水野泰宏", leadSource: "反響",
		acquisition: 19_000_000, exit: 21_930_000, commission: 693_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-09-01",
		intermediary: models.IntermediaryMSCompany, broker: "NBF", memo: "業者選定中",
		status: models.BusinessStatusUnconfirmed, docStatus: models.DocumentStatusAcquiring},

	// settling in September 2025
	{id: "eeeeeeee-eeee-4eee-8eee-000000000006", assignees: []string{"牟田"}, property: "MAXIV武蔵小杉", room: "204", owner: "白幡拓也", leadSource: "反響",
		acquisition: 16_520_000, exit: 20_050_000, commission: 400_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-06-01", resaleOn: "2025-06-15",
		settlement: "2025-09-08", buyer: "REIC→株式会社アップルハウス", intermediary: models.IntermediaryMSCompany, broker: "レイジット", mortgageBank: "ジャックス",
		company: models.AccountCompanyReijit, bankAccount: "住信", legacy: settledFlags, memo: "※B案件 決済完了",
		status: models.BusinessStatusSettlementCompleted, docStatus: models.DocumentStatusAllAcquired},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000007", assignees: []string{"牟田"}, property: "HY's横浜SOUTHWEST", room: "701", owner: "佐々木彬（旧姓 畠山）", leadSource: "テレアポ",
		acquisition: 15_950_000, exit: 22_700_000, commission: 400_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-06-06", resaleOn: "2025-07-03",
		settlement: "2025-09-16", buyer: "ネクストステージ", intermediary: models.IntermediaryMSCompany, broker: "レイジット", mortgageBank: "SBJ銀行",
		company: models.AccountCompanyReijit, bankAccount: "GMOメイン", legacy: settledFlags, memo: "決済完了",
		status: models.BusinessStatusSettlementCompleted, docStatus: models.DocumentStatusAllAcquired},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000008", assignees: []string{"清原"}, property: "アドバンス名古屋モクシー", room: "1409", owner: "櫻井祐希", leadSource: "DM",
		acquisition: 12_200_000, exit: 16_500_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-02-14", resaleOn: "2025-05-23",
		settlement: "2025-09-19", buyer: "GEED", intermediary: models.IntermediaryLifeInvest, broker: "レイジット", mortgageBank: "ソニー銀行",
		company: models.AccountCompanyLife, bankAccount: "GMOメイン", legacy: settledFlags, memo: "決済完了",
		status: models.BusinessStatusSettlementCompleted, docStatus: models.DocumentStatusAllAcquired},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000009", assignees: []string{"牟田"}, property: "HY's綾瀬駅前", room: "404", owner: "山田雅也", leadSource: "紹介",
		acquisition: 20_000_000, exit: 23_300_000, commission: 600_000, deposit: 500_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-07-04", resaleOn: "2025-07-23",
		settlement: "2025-09-26", buyer: "GA", intermediary: models.IntermediaryMSCompany, broker: "レイジット", mortgageBank: "楽天銀行",
		company: models.AccountCompanyMS, bankAccount: "GMOメイン", legacy: settledFlags, memo: "決済完了",
		status: models.BusinessStatusSettlementCompleted, docStatus: models.DocumentStatusAllAcquired},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000010", assignees: []string{"牟田"}, property: "HY's西横浜", room: "205", owner: "永瀬繁幸", leadSource: "反響",
		acquisition: 9_570_000, exit: 19_100_000, commission: 340_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-07-25", resaleOn: "2025-08-30",
		settlement: "2025-09-30", buyer: "セカンドライブ→ブロードブレインズ", intermediary: models.IntermediaryMSCompany, broker: "レイジット", mortgageBank: "イオン銀行",
		company: models.AccountCompanyMS, bankAccount: "GMOメイン", legacy: settledFlags, memo: "※B案件 決済完了",
		status: models.BusinessStatusSettlementCompleted, docStatus: models.DocumentStatusAllAcquired},

	// settling in October 2025
	{id: "eeeeeeee-eeee-4eee-8eee-000000000011", assignees: []string{"清原", "坂本"}, property: "スワンズシティ南堀江ブルーム", room: "1204", owner: "留田敏和", leadSource: "反響",
		acquisition: 16_800_000, exit: 19_000_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-06-04", resaleOn: "2025-06-04",
		settlement: "2025-10-02", buyer: "ネクサス", intermediary: models.IntermediaryLifeInvest, broker: "TOUSEI", mortgageBank: "オリックス銀行",
		company: models.AccountCompanyLife, bankAccount: "GMOメイン",
		legacy: models.LegacyFlags{OwnershipTransfer: true, DocumentSent: true, TransactionLedger: true}, memo: "決済完了",
		status: models.BusinessStatusSettlementCompleted, docStatus: models.DocumentStatusAllAcquired},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000012", assignees: []string{"清原", "横山"}, property: "アクタス大濠レノア", room: "403", owner: "上原樹縁", leadSource: "テレアポ",
		acquisition: 8_150_000, exit: 10_700_000, commission: 335_000, deposit: 300_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-07-30", resaleOn: "2025-08-30",
		settlement: "2025-10-07", buyer: "トラストアライアンス（買仲）", intermediary: models.IntermediaryMSCompany, broker: "レイジット", mortgageBank: "東京スター銀行",
		company: models.AccountCompanyMS, bankAccount: "GMOサブ", legacy: settledFlags, memo: "※B案件 決済完了",
		status: models.BusinessStatusSettlementCompleted, docStatus: models.DocumentStatusAllAcquired},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000013", assignees: []string{"牟田"}, property: "バージュアル武蔵小杉", room: "205", owner: "黒瀬有希", leadSource: "DM",
		acquisition: 8_160_000, exit: 11_500_000, commission: 300_000, deposit: 500_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-07-15", resaleOn: "2025-08-01",
		settlement: "2025-10-16", buyer: "アップルハウス", intermediary: models.IntermediaryMSCompany, broker: "レイジット", mortgageBank: "auじぶん銀行",
		company: models.AccountCompanyMS, bankAccount: "GMOサブ",
		legacy: models.LegacyFlags{OwnershipTransfer: true, AccountTransfer: true, DocumentSent: true}, memo: "重調58,300円 ※B案件",
		status: models.BusinessStatusStatementDoneAwaitingSettle, docStatus: models.DocumentStatusAllAcquired},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000014", assignees: []string{"國眼"}, property: "メインステージ千歳烏山", room: "501", owner: "菊池健宏", leadSource: "紹介",
		acquisition: 15_580_000, exit: 19_900_000, commission: 100_000, deposit: 500_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-07-01", resaleOn: "2025-07-01",
		settlement: "2025-10-31", intermediary: models.IntermediaryMSCompany, broker: "NBF", mortgageBank: "楽天銀行",
		company: models.AccountCompanyMS, bankAccount: "住信",
		legacy: models.LegacyFlags{OwnershipTransfer: true, AccountTransfer: true, DocumentSent: true},
		status: models.BusinessStatusStatementDoneAwaitingSettle, docStatus: models.DocumentStatusAllAcquired},
	{id: "eeeeeeee-eeee-4eee-8eee-000000000015", assignees: []string{"國眼"}, property: "アドバンス新大阪ラシュレ", room: "815", owner: "石井辰弥", leadSource: "反響",
		acquisition: 13_800_000, exit: 16_800_000, commission: 521_400, deposit: 300_000, contractType: models.ContractTypeABBC, acquiredOn: "2025-09-26", resaleOn: "2025-09-26",
		settlement: "2025-10-31", buyer: "GDR", intermediary: models.IntermediaryLifeInvest, broker: "エスク", mortgageBank: "ジャックス",
		company: models.AccountCompanyLife, bankAccount: "GMOメイン",
		legacy: models.LegacyFlags{OwnershipTransfer: true, AccountTransfer: true, DocumentSent: true, ManagementCancel: true},
		status: models.BusinessStatusStatementDoneAwaitingSettle, docStatus: models.DocumentStatusAllAcquired},
}

// SeedAllTestData loads the sample deals. It is idempotent: nothing is
// written when the sentinel deal already exists.
func SeedAllTestData(ctx context.Context, dealRepo internal_repositories.DealRepository) error {
	existing, err := dealRepo.GetByID(ctx, uuid.MustParse(SentinelDealID))
	if err != nil && err != pgx.ErrNoRows {
		return fmt.Errorf("failed to check for sentinel deal: %w", err)
	}
	if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	now := internal_utils.BusinessNow()
	for _, s := range seedDeals {
		d, err := s.build(now)
		if err != nil {
			return fmt.Errorf("build seed deal %s: %w", s.id, err)
		}
		if err := dealRepo.Create(ctx, d); err != nil {
			return fmt.Errorf("create seed deal %s: %w", s.id, err)
		}
	}

	utils.Logger.Infof("Seeded %d sample deals.", len(seedDeals))
	return nil
}

func (s seedDeal) build(now time.Time) (*models.Deal, error) {
	d := models.NewDeal(uuid.MustParse(s.id), s.assignees, dateexpr.Parse(s.acquiredOn, now))
	d.PropertyName = s.property
	d.RoomNumber = s.room
	d.OwnerName = s.owner
	d.LeadSource = s.leadSource
	d.AcquisitionAmount = s.acquisition
	d.ExitAmount = s.exit
	d.CommissionTotal = s.commission
	d.DepositFromBuyer = s.deposit
	d.ContractType = s.contractType
	d.ResaleContractDate = dateexpr.Parse(s.resaleOn, now)
	d.BuyerCompany = s.buyer
	d.IntermediaryCompany = s.intermediary
	d.BrokerCompany = s.broker
	d.MortgageBank = s.mortgageBank
	d.LegacyFlags = s.legacy
	d.Memo = s.memo
	d.DocumentStatus = s.docStatus
	d.CreatedAt = now
	d.UpdatedAt = now

	if s.status != models.BusinessStatusUnconfirmed {
		settlement := dateexpr.Parse(s.settlement, now)
		if err := d.ChangeBusinessStatus(s.status, &settlement); err != nil {
			return nil, err
		}
	}
	if err := d.SetAccountCompany(s.company); err != nil {
		return nil, err
	}
	if err := d.SetBankAccount(s.bankAccount); err != nil {
		return nil, err
	}
	return d, d.Validate()
}
