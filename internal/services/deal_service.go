package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/constants"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dateexpr"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dtos"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/lifecycle"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
	internal_repositories "github.com/tk20211228/deal-flow-sample-sqlite/internal/repositories"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/middleware"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/utils"
	internal_utils "github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

type DealService struct {
	dealRepo internal_repositories.DealRepository
	now      func() time.Time
}

func NewDealService(dealRepo internal_repositories.DealRepository) *DealService {
	return &DealService{dealRepo: dealRepo, now: internal_utils.BusinessNow}
}

// CreateDeal registers a new deal at acquisition-contract time: UNCONFIRMED,
// no settlement date and an empty progress tree.
func (s *DealService) CreateDeal(ctx context.Context, req dtos.CreateDealRequest) (*dtos.DealResponse, error) {
	now := s.now()

	contractType, err := models.ParseContractType(req.ContractType)
	if err != nil {
		return nil, toAppError(err, "create deal")
	}
	intermediary, err := models.ParseIntermediaryCompany(req.IntermediaryCompany)
	if err != nil {
		return nil, toAppError(err, "create deal")
	}

	deal := models.NewDeal(uuid.New(), req.Assignees, dateexpr.Parse(req.AcquisitionContractDate, now))
	deal.PropertyName = strings.TrimSpace(req.PropertyName)
	deal.RoomNumber = req.RoomNumber
	deal.OwnerName = req.OwnerName
	deal.LeadSource = req.LeadSource
	deal.AcquisitionAmount = req.AcquisitionAmount
	deal.ExitAmount = req.ExitAmount
	deal.CommissionTotal = req.CommissionTotal
	deal.DepositFromBuyer = req.DepositFromBuyer
	deal.ContractType = contractType
	deal.ResaleContractDate = dateexpr.Parse(req.ResaleContractDate, now)
	deal.BuyerCompany = req.BuyerCompany
	deal.IntermediaryCompany = intermediary
	deal.BrokerCompany = req.BrokerCompany
	deal.MortgageBank = req.MortgageBank
	deal.Memo = req.Memo
	deal.CreatedAt = now
	deal.UpdatedAt = now

	if err := deal.Validate(); err != nil {
		return nil, toAppError(err, "create deal")
	}
	if err := s.dealRepo.Create(ctx, deal); err != nil {
		return nil, toAppError(err, "create deal")
	}

	utils.Logger.WithFields(logrus.Fields{
		"deal_id":  deal.ID,
		"property": deal.PropertyName,
		"staff":    middleware.StaffNameFromContext(ctx),
	}).Info("Deal created")

	resp := dtos.NewDealResponse(deal)
	return &resp, nil
}

func (s *DealService) GetDeal(ctx context.Context, id uuid.UUID) (*dtos.DealResponse, error) {
	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		return nil, toAppError(err, "get deal")
	}
	if deal == nil {
		return nil, toAppError(internal_utils.ErrDealNotFound, "get deal")
	}
	resp := dtos.NewDealResponse(deal)
	return &resp, nil
}

// ListDeals returns deals, optionally restricted to one business category,
// newest acquisition first, with totals over the returned set.
func (s *DealService) ListDeals(ctx context.Context, category string, limit int) (*dtos.DealListResponse, error) {
	filter := internal_repositories.DealFilter{Limit: clampLimit(limit)}
	if category != "" {
		c := models.Category(category)
		if !c.Valid() {
			return nil, &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeValidation,
				Message:    fmt.Sprintf("unknown category %q", category),
			}
		}
		for _, st := range models.BusinessStatuses() {
			if st.Category() == c {
				filter.Statuses = append(filter.Statuses, st)
			}
		}
	}

	deals, err := s.dealRepo.List(ctx, filter)
	if err != nil {
		return nil, toAppError(err, "list deals")
	}
	deals = lifecycle.SortByAcquisitionDateDesc(deals)
	return &dtos.DealListResponse{
		Deals:  dtos.NewDealResponses(deals),
		Totals: lifecycle.SumTotals(deals),
	}, nil
}

// ListUnconfirmed is the pipeline view: every UNCONFIRMED deal, newest
// acquisition first, undated ones last.
func (s *DealService) ListUnconfirmed(ctx context.Context) (*dtos.UnconfirmedDealsResponse, error) {
	deals, err := s.dealRepo.List(ctx, internal_repositories.DealFilter{
		Statuses: []models.BusinessStatus{models.BusinessStatusUnconfirmed},
	})
	if err != nil {
		return nil, toAppError(err, "list unconfirmed deals")
	}
	deals = lifecycle.SortByAcquisitionDateDesc(deals)
	return &dtos.UnconfirmedDealsResponse{
		Deals:  dtos.NewDealResponses(deals),
		Totals: lifecycle.SumTotals(deals),
	}, nil
}

// UpdateDeal patches the descriptive, money and date fields.
func (s *DealService) UpdateDeal(ctx context.Context, id uuid.UUID, req dtos.UpdateDealRequest) (*dtos.DealResponse, error) {
	now := s.now()
	return s.mutate(ctx, id, req.RowVersion, "update deal", func(d *models.Deal) error {
		if req.Assignees != nil {
			d.SetAssignees(*req.Assignees)
		}
		if req.PropertyName != nil {
			d.PropertyName = strings.TrimSpace(*req.PropertyName)
		}
		if req.RoomNumber != nil {
			d.RoomNumber = *req.RoomNumber
		}
		if req.OwnerName != nil {
			d.OwnerName = *req.OwnerName
		}
		if req.LeadSource != nil {
			d.LeadSource = *req.LeadSource
		}
		if req.AcquisitionAmount != nil {
			d.AcquisitionAmount = *req.AcquisitionAmount
		}
		if req.ExitAmount != nil {
			d.ExitAmount = *req.ExitAmount
		}
		if req.CommissionTotal != nil {
			d.CommissionTotal = *req.CommissionTotal
		}
		if req.DepositFromBuyer != nil {
			d.DepositFromBuyer = *req.DepositFromBuyer
		}
		if req.ContractType != nil {
			ct, err := models.ParseContractType(*req.ContractType)
			if err != nil {
				return err
			}
			d.ContractType = ct
		}
		if req.AcquisitionContractDate != nil && *req.AcquisitionContractDate != d.AcquisitionContractDate.Text {
			d.AcquisitionContractDate = dateexpr.Parse(*req.AcquisitionContractDate, now)
		}
		if req.ResaleContractDate != nil && *req.ResaleContractDate != d.ResaleContractDate.Text {
			d.ResaleContractDate = dateexpr.Parse(*req.ResaleContractDate, now)
		}
		if req.BuyerCompany != nil {
			d.BuyerCompany = *req.BuyerCompany
		}
		if req.IntermediaryCompany != nil {
			ic, err := models.ParseIntermediaryCompany(*req.IntermediaryCompany)
			if err != nil {
				return err
			}
			d.IntermediaryCompany = ic
		}
		if req.BrokerCompany != nil {
			d.BrokerCompany = *req.BrokerCompany
		}
		if req.MortgageBank != nil {
			d.MortgageBank = *req.MortgageBank
		}
		if req.Memo != nil {
			d.Memo = *req.Memo
		}
		if req.LegacyFlags != nil {
			d.LegacyFlags = *req.LegacyFlags
		}
		return nil
	})
}

// ChangeBusinessStatus moves a deal through the lifecycle. Backward moves are
// accepted but logged.
func (s *DealService) ChangeBusinessStatus(ctx context.Context, id uuid.UUID, req dtos.ChangeBusinessStatusRequest) (*dtos.DealResponse, error) {
	status, err := models.ParseBusinessStatus(req.Status)
	if err != nil {
		return nil, toAppError(err, "change business status")
	}
	now := s.now()

	return s.mutate(ctx, id, req.RowVersion, "change business status", func(d *models.Deal) error {
		var settlement *dateexpr.Expression
		if req.SettlementDate != nil {
			e := s.reparse(d.SettlementDate, *req.SettlementDate, now)
			settlement = &e
		}
		from := d.BusinessStatus
		if err := d.ChangeBusinessStatus(status, settlement); err != nil {
			return err
		}
		if status.Rank() < from.Rank() {
			utils.Logger.WithFields(logrus.Fields{
				"deal_id": d.ID,
				"from":    from,
				"to":      status,
				"staff":   middleware.StaffNameFromContext(ctx),
			}).Warn("Business status moved backwards")
		}
		return nil
	})
}

func (s *DealService) SetSettlementDate(ctx context.Context, id uuid.UUID, req dtos.SetSettlementDateRequest) (*dtos.DealResponse, error) {
	now := s.now()
	return s.mutate(ctx, id, req.RowVersion, "set settlement date", func(d *models.Deal) error {
		return d.SetSettlementDate(s.reparse(d.SettlementDate, req.SettlementDate, now))
	})
}

func (s *DealService) SetDocumentStatus(ctx context.Context, id uuid.UUID, req dtos.SetDocumentStatusRequest) (*dtos.DealResponse, error) {
	status, err := models.ParseDocumentStatus(req.Status)
	if err != nil {
		return nil, toAppError(err, "set document status")
	}
	return s.mutate(ctx, id, req.RowVersion, "set document status", func(d *models.Deal) error {
		d.DocumentStatus = status
		return nil
	})
}

// SetSettlementAccount selects the company and then the bank account, so a
// company change always clears an account left over from the previous one.
func (s *DealService) SetSettlementAccount(ctx context.Context, id uuid.UUID, req dtos.SetSettlementAccountRequest) (*dtos.DealResponse, error) {
	company, err := models.ParseAccountCompany(req.Company)
	if err != nil {
		return nil, toAppError(err, "set settlement account")
	}
	return s.mutate(ctx, id, req.RowVersion, "set settlement account", func(d *models.Deal) error {
		if err := d.SetAccountCompany(company); err != nil {
			return err
		}
		return d.SetBankAccount(models.BankAccount(req.BankAccount))
	})
}

func (s *DealService) UpdateCheckItems(ctx context.Context, id uuid.UUID, req dtos.UpdateCheckItemsRequest) (*dtos.DealResponse, error) {
	staff := middleware.StaffNameFromContext(ctx)
	at := s.now()
	return s.mutate(ctx, id, req.RowVersion, "update check items", func(d *models.Deal) error {
		tree := d.Progress
		for _, item := range req.Items {
			next, err := tree.WithCheckItem(item.Path, item.Checked, staff, at)
			if err != nil {
				return err
			}
			tree = next
		}
		d.Progress = tree
		return nil
	})
}

func (s *DealService) UpdateDocumentItems(ctx context.Context, id uuid.UUID, req dtos.UpdateDocumentItemsRequest) (*dtos.DealResponse, error) {
	staff := middleware.StaffNameFromContext(ctx)
	at := s.now()
	return s.mutate(ctx, id, req.RowVersion, "update document items", func(d *models.Deal) error {
		tree := d.Progress
		for _, item := range req.Items {
			status, err := models.ParseDocumentItemStatus(item.Status)
			if err != nil {
				return err
			}
			next, err := tree.WithDocumentItem(item.Path, status, staff, at)
			if err != nil {
				return err
			}
			tree = next
		}
		d.Progress = tree
		return nil
	})
}

// UpdateStages sets individual stages of staged items. Stages may be
// completed in any order.
func (s *DealService) UpdateStages(ctx context.Context, id uuid.UUID, req dtos.UpdateStagesRequest) (*dtos.DealResponse, error) {
	staff := middleware.StaffNameFromContext(ctx)
	at := s.now()
	return s.mutate(ctx, id, req.RowVersion, "update stages", func(d *models.Deal) error {
		tree := d.Progress
		for _, item := range req.Items {
			next, err := tree.WithStage(item.Path, models.Stage(item.Stage), item.Checked, staff, at)
			if err != nil {
				return err
			}
			tree = next
		}
		d.Progress = tree
		return nil
	})
}

// mutate runs fn inside the optimistic-locking loop. When expected is set,
// the stored row_version must match it or the update is refused outright.
func (s *DealService) mutate(
	ctx context.Context,
	id uuid.UUID,
	expected *int64,
	action string,
	fn func(*models.Deal) error,
) (*dtos.DealResponse, error) {
	var updated *models.Deal
	err := s.dealRepo.UpdateWithRetry(ctx, id, func(d *models.Deal) error {
		if expected != nil && d.RowVersion != *expected {
			return fmt.Errorf("%w: expected row_version %d, found %d", utils.ErrRowVersionConflict, *expected, d.RowVersion)
		}
		if err := fn(d); err != nil {
			return err
		}
		if err := d.Validate(); err != nil {
			return err
		}
		d.UpdatedAt = s.now()
		updated = d
		return nil
	})
	if err != nil {
		return nil, toAppError(err, action)
	}
	resp := dtos.NewDealResponse(updated)
	return &resp, nil
}

// reparse resolves text unless it is unchanged, in which case the stored
// resolution is kept so relative expressions do not drift.
func (s *DealService) reparse(current *dateexpr.Expression, text string, now time.Time) dateexpr.Expression {
	if current != nil && current.Text == text {
		return *current
	}
	return dateexpr.Parse(text, now)
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return constants.DefaultListLimit
	case limit > constants.MaxListLimit:
		return constants.MaxListLimit
	default:
		return limit
	}
}
