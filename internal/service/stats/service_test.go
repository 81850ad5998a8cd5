package stats

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/logger"
)

type fakeRepo struct {
	counts  map[domain.GroupKey][]domain.GroupCount
	revenue decimal.Decimal
	ranges  []domain.DateRange
	err     error
}

func (r *fakeRepo) CountBy(_ context.Context, key domain.GroupKey, rng domain.DateRange) ([]domain.GroupCount, error) {
	r.ranges = append(r.ranges, rng)
	return r.counts[key], r.err
}

func (r *fakeRepo) SumRevenue(_ context.Context, rng domain.DateRange) (decimal.Decimal, error) {
	r.ranges = append(r.ranges, rng)
	return r.revenue, r.err
}

type fakeTx struct {
	calls int
}

func (tx *fakeTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

func TestGetStats_AggregatesInsideOneTransaction(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	repo := &fakeRepo{
		counts: map[domain.GroupKey][]domain.GroupCount{
			domain.GroupByStatus:  {{Key: "completed", Count: 2}, {Key: "scheduled", Count: 3}},
			domain.GroupByBarber:  {{Key: "b1", Count: 5}},
			domain.GroupByService: {{Key: "s1", Count: 4}, {Key: "s2", Count: 1}},
			domain.GroupByDay:     {{Key: "2024-06-02", Count: 1}, {Key: "2024-06-01", Count: 4}},
		},
		revenue: decimal.RequireFromString("175.50"),
	}
	tx := &fakeTx{}
	svc := NewService(repo, tx, loc, logger.Nop())

	resp, err := svc.GetStats(context.Background(),
		time.Date(2024, 6, 1, 0, 0, 0, 0, loc), time.Date(2024, 6, 2, 0, 0, 0, 0, loc))
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 5, resp.TotalCount)
	assert.Equal(t, map[string]int{"completed": 2, "scheduled": 3}, resp.ByStatus)
	assert.Equal(t, "2024-06-01", resp.ByDay[0].Date)
	assert.Equal(t, "2024-06-02", resp.ByDay[1].Date)
	assert.True(t, resp.TotalRevenue.Equal(decimal.RequireFromString("175.5")))
	assert.Equal(t, "2024-06-01", resp.StartDate)
	assert.Equal(t, "2024-06-02", resp.EndDate)

	// Конец периода включительно: запросы идут по [1 июня, 3 июня)
	for _, rng := range repo.ranges {
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), rng.From)
		assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, loc), rng.To)
	}
}

func TestGetStats_RejectsInvertedRange(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeTx{}, time.UTC, logger.Nop())

	_, err := svc.GetStats(context.Background(),
		time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetStats_StorageError(t *testing.T) {
	svc := NewService(&fakeRepo{err: domain.ErrStorage}, &fakeTx{}, time.UTC, logger.Nop())

	_, err := svc.GetStats(context.Background(), time.Now(), time.Now())
	assert.ErrorIs(t, err, domain.ErrStorage)
}
