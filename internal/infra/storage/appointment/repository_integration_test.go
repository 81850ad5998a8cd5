package appointment

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/ptr"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
)

// openTestDB подключается к БД из BARBER_TEST_DATABASE_URL и применяет миграции.
// Без переменной тест пропускается.
func openTestDB(t *testing.T) *dbmetrics.DB {
	t.Helper()

	dsn := os.Getenv("BARBER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("BARBER_TEST_DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, file, _, _ := runtime.Caller(0)
	migration, err := os.ReadFile(filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)

	_, err = db.Exec(string(migration))
	require.NoError(t, err)
	_, err = db.Exec("TRUNCATE appointments")
	require.NoError(t, err)

	return dbmetrics.Wrap(db, nil)
}

func newAppointment(barberID objectid.ID, start time.Time, minutes int) *domain.Appointment {
	now := time.Now().UTC()
	return &domain.Appointment{
		ClientName:      "Ana Souza",
		ClientPhone:     "11987654321",
		Date:            start,
		DurationMinutes: minutes,
		BarberID:        barberID,
		ServiceID:       objectid.New(),
		BarberName:      "João Silva",
		ServiceName:     "Corte de Cabelo",
		Price:           decimal.NewFromInt(35),
		Status:          domain.StatusScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestRepository_InsertFindAndOverlapConstraint(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db, time.UTC)
	ctx := context.Background()

	barber := objectid.New()
	nine := time.Date(2030, 6, 10, 9, 0, 0, 0, time.UTC)

	id, err := repo.Insert(ctx, newAppointment(barber, nine, 30))
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", got.ClientName)
	assert.True(t, got.Date.Equal(nine))
	assert.True(t, got.Price.Equal(decimal.NewFromInt(35)))

	// 09:15 пересекается, ограничение БД отклоняет вставку даже без проверки в коде
	_, err = repo.Insert(ctx, newAppointment(barber, nine.Add(15*time.Minute), 30))
	assert.ErrorIs(t, err, ErrOverlap)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// 09:30 только касается
	_, err = repo.Insert(ctx, newAppointment(barber, nine.Add(30*time.Minute), 30))
	require.NoError(t, err)

	window, err := repo.FindByBarberAndWindow(ctx, barber, domain.NewInterval(nine.Add(20*time.Minute), 5))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, id, window[0].ID)

	_, err = repo.FindByID(ctx, objectid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_UpdateRecomputesEndAndCancelledFreesInterval(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db, time.UTC)
	ctx := context.Background()

	barber := objectid.New()
	nine := time.Date(2030, 6, 11, 9, 0, 0, 0, time.UTC)

	id, err := repo.Insert(ctx, newAppointment(barber, nine, 30))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, id, domain.AppointmentChanges{DurationMinutes: ptr.Ptr(60)}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 60, updated.DurationMinutes)

	// end_at пересчитан: окно 09:45 теперь пересекается с записью
	window, err := repo.FindByBarberAndWindow(ctx, barber, domain.NewInterval(nine.Add(45*time.Minute), 10))
	require.NoError(t, err)
	assert.Len(t, window, 1)

	_, err = repo.Update(ctx, id, domain.AppointmentChanges{Status: ptr.Ptr(domain.StatusCancelled)}, time.Now())
	require.NoError(t, err)

	_, err = repo.Insert(ctx, newAppointment(barber, nine, 30))
	assert.NoError(t, err)

	_, err = repo.Update(ctx, objectid.New(), domain.AppointmentChanges{Notes: ptr.Ptr("x")}, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_SearchEscapesPatternAndLimits(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db, time.UTC)
	ctx := context.Background()

	start := time.Date(2030, 7, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		a := newAppointment(objectid.New(), start.Add(time.Duration(i)*time.Hour), 30)
		if i == 0 {
			a.ClientName = "100% Cliente"
		}
		_, err := repo.Insert(ctx, a)
		require.NoError(t, err)
	}

	found, err := repo.Search(ctx, domain.SearchFilter{ClientName: "100%"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = repo.Search(ctx, domain.SearchFilter{ClientName: "souza"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.True(t, found[0].Date.After(found[1].Date))
}

func TestRepository_StatsQueriesInsideReadOnlyTx(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db, time.UTC)
	tm := txmanager.NewTransactionManager(db, nil)
	ctx := context.Background()

	day := time.Date(2030, 8, 1, 10, 0, 0, 0, time.UTC)
	barber := objectid.New()

	_, err := repo.Insert(ctx, newAppointment(barber, day, 30))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newAppointment(barber, day.AddDate(0, 0, 1), 30))
	require.NoError(t, err)

	cancelled := newAppointment(barber, day.Add(time.Hour), 30)
	cancelled.Status = domain.StatusCancelled
	_, err = repo.Insert(ctx, cancelled)
	require.NoError(t, err)

	rng := domain.InclusiveDaysRange(day, day.AddDate(0, 0, 1), time.UTC)

	var byDay []domain.GroupCount
	var revenue decimal.Decimal
	err = tm.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if byDay, err = repo.CountBy(ctx, domain.GroupByDay, rng); err != nil {
			return err
		}
		revenue, err = repo.SumRevenue(ctx, rng)
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.GroupCount{{Key: "2030-08-01", Count: 1}, {Key: "2030-08-02", Count: 1}}, byDay)
	assert.True(t, revenue.Equal(decimal.NewFromInt(70)), revenue.String())
}
