package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/dateexpr"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/models"
	internal_repositories "github.com/tk20211228/deal-flow-sample-sqlite/internal/repositories"
	"github.com/tk20211228/deal-flow-sample-sqlite/internal/shared/repositories"
	internal_utils "github.com/tk20211228/deal-flow-sample-sqlite/internal/utils"
)

var testNow = time.Date(2025, time.September, 1, 9, 0, 0, 0, internal_utils.BusinessLocation())

// fakeDealRepo keeps deals in memory and runs updates through the same
// optimistic-locking loop as the pgx repository.
type fakeDealRepo struct {
	mu    sync.Mutex
	deals map[uuid.UUID]models.Deal
	order []uuid.UUID
}

var _ internal_repositories.DealRepository = (*fakeDealRepo)(nil)

func newFakeDealRepo(deals ...*models.Deal) *fakeDealRepo {
	r := &fakeDealRepo{deals: map[uuid.UUID]models.Deal{}}
	for _, d := range deals {
		_ = r.Create(context.Background(), d)
	}
	return r
}

func (r *fakeDealRepo) Create(_ context.Context, d *models.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.SetRowVersion(1)
	r.deals[d.ID] = *d
	r.order = append(r.order, d.ID)
	return nil
}

func (r *fakeDealRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deals[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDealRepo) List(_ context.Context, f internal_repositories.DealFilter) ([]*models.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Deal{}
	for _, id := range r.order {
		d := r.deals[id]
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, d.BusinessStatus) {
			continue
		}
		if f.AccountCompany != nil && d.SettlementAccountCompany != *f.AccountCompany {
			continue
		}
		out = append(out, &d)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *fakeDealRepo) ListSettlingBetween(_ context.Context, from, to time.Time) ([]*models.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Deal{}
	for _, id := range r.order {
		d := r.deals[id]
		day := d.ResolvedSettlementDay()
		if d.BusinessStatus == models.BusinessStatusUnconfirmed || day == nil {
			continue
		}
		if day.Before(from) || day.After(to) {
			continue
		}
		out = append(out, &d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SettlementDate.Date.Before(*out[j].SettlementDate.Date)
	})
	return out, nil
}

func (r *fakeDealRepo) UpdateIfVersion(_ context.Context, d *models.Deal, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.deals[d.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	next := *d
	next.RowVersion = expected + 1
	r.deals[d.ID] = next
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeDealRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Deal) error) error {
	get := func(ctx context.Context, id string) (*models.Deal, error) {
		return r.GetByID(ctx, uuid.MustParse(id))
	}
	return repositories.WithRetry(ctx, repositories.DefaultMaxRetries, id.String(), get, r.UpdateIfVersion, mutate)
}

func (r *fakeDealRepo) stored(id uuid.UUID) models.Deal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deals[id]
}

func containsStatus(list []models.BusinessStatus, s models.BusinessStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func unconfirmedDeal(acquisition string, exit int64) *models.Deal {
	d := models.NewDeal(uuid.New(), []string{"湊"}, dateexpr.Parse(acquisition, testNow))
	d.ExitAmount = exit
	return d
}

func confirmedDeal(t *testing.T, status models.BusinessStatus, company models.AccountCompany, settlement string, exit int64) *models.Deal {
	t.Helper()
	d := unconfirmedDeal("2025年8月1日", exit)
	e := dateexpr.Parse(settlement, testNow)
	require.NoError(t, d.ChangeBusinessStatus(status, &e))
	require.NoError(t, d.SetAccountCompany(company))
	return d
}
