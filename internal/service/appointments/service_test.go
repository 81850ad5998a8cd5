package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/logger"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/ptr"
)

type fakeRepo struct {
	findByID        func(ctx context.Context, id objectid.ID) (*domain.Appointment, error)
	findByDateRange func(ctx context.Context, rng domain.DateRange, barberID *objectid.ID) ([]*domain.Appointment, error)
	findByClient    func(ctx context.Context, phone string, limit int) ([]*domain.Appointment, error)
	findUpcoming    func(ctx context.Context, now time.Time, limit int) ([]*domain.Appointment, error)
	findPast        func(ctx context.Context, now time.Time, limit int) ([]*domain.Appointment, error)
	search          func(ctx context.Context, filter domain.SearchFilter) ([]*domain.Appointment, error)
	delete          func(ctx context.Context, id objectid.ID) error
}

func (r *fakeRepo) FindByID(ctx context.Context, id objectid.ID) (*domain.Appointment, error) {
	return r.findByID(ctx, id)
}

func (r *fakeRepo) FindByDateRange(ctx context.Context, rng domain.DateRange, barberID *objectid.ID) ([]*domain.Appointment, error) {
	return r.findByDateRange(ctx, rng, barberID)
}

func (r *fakeRepo) FindByClient(ctx context.Context, phone string, limit int) ([]*domain.Appointment, error) {
	return r.findByClient(ctx, phone, limit)
}

func (r *fakeRepo) FindUpcoming(ctx context.Context, now time.Time, limit int) ([]*domain.Appointment, error) {
	return r.findUpcoming(ctx, now, limit)
}

func (r *fakeRepo) FindPast(ctx context.Context, now time.Time, limit int) ([]*domain.Appointment, error) {
	return r.findPast(ctx, now, limit)
}

func (r *fakeRepo) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Appointment, error) {
	return r.search(ctx, filter)
}

func (r *fakeRepo) Delete(ctx context.Context, id objectid.ID) error {
	return r.delete(ctx, id)
}

type fakeDetector struct {
	conflict bool
	err      error
	calls    []int
}

func (d *fakeDetector) HasConflict(_ context.Context, _ objectid.ID, _ time.Time, durationMinutes int, _ *objectid.ID) (bool, error) {
	d.calls = append(d.calls, durationMinutes)
	return d.conflict, d.err
}

type fakeCatalog struct {
	barbers []*domain.Barber
}

func (c *fakeCatalog) ListAvailableBarbers(context.Context) ([]*domain.Barber, error) {
	return c.barbers, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var loc = time.FixedZone("BRT", -3*3600)

func TestService_GetByDateUsesLocalDay(t *testing.T) {
	var got domain.DateRange
	repo := &fakeRepo{findByDateRange: func(_ context.Context, rng domain.DateRange, _ *objectid.ID) ([]*domain.Appointment, error) {
		got = rng
		return []*domain.Appointment{{ID: objectid.New(), Date: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC), DurationMinutes: 30}}, nil
	}}
	svc := NewService(repo, &fakeDetector{}, &fakeCatalog{}, loc, logger.Nop())

	resp, err := svc.GetByDate(context.Background(), &models.GetByDateRequest{Date: time.Date(2024, 6, 10, 0, 0, 0, 0, loc)})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, loc), got.From)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, loc), got.To)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, 9, resp.Appointments[0].Date.Hour())
	assert.Equal(t, 9, resp.Appointments[0].EndDate.Hour())
	assert.Equal(t, 30, resp.Appointments[0].EndDate.Minute())
}

func TestService_GetByIDAndDeleteNotFound(t *testing.T) {
	repo := &fakeRepo{
		findByID: func(context.Context, objectid.ID) (*domain.Appointment, error) { return nil, domain.ErrNotFound },
		delete:   func(context.Context, objectid.ID) error { return domain.ErrNotFound },
	}
	svc := NewService(repo, &fakeDetector{}, &fakeCatalog{}, loc, logger.Nop())

	_, err := svc.GetByID(context.Background(), objectid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	err = svc.Delete(context.Background(), objectid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_SearchBuildsFilter(t *testing.T) {
	var got domain.SearchFilter
	repo := &fakeRepo{search: func(_ context.Context, f domain.SearchFilter) ([]*domain.Appointment, error) {
		got = f
		return nil, nil
	}}
	svc := NewService(repo, &fakeDetector{}, &fakeCatalog{}, loc, logger.Nop())

	resp, err := svc.Search(context.Background(), &models.SearchRequest{
		ClientName: "  ana ",
		StartDate:  ptr.Ptr(time.Date(2024, 6, 1, 0, 0, 0, 0, loc)),
		EndDate:    ptr.Ptr(time.Date(2024, 6, 30, 0, 0, 0, 0, loc)),
		Status:     ptr.Ptr("scheduled"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Appointments)
	assert.Equal(t, "ana", got.ClientName)
	assert.Equal(t, domain.SearchLimit, got.Limit)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, loc), *got.To)
	assert.Equal(t, domain.StatusScheduled, *got.Status)

	_, err = svc.Search(context.Background(), &models.SearchRequest{Status: ptr.Ptr("agendado")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_ListLimits(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, loc)
	var limits []int
	capture := func(_ context.Context, _ time.Time, limit int) ([]*domain.Appointment, error) {
		limits = append(limits, limit)
		return nil, nil
	}
	repo := &fakeRepo{
		findUpcoming: capture,
		findPast:     capture,
		findByClient: func(_ context.Context, _ string, limit int) ([]*domain.Appointment, error) {
			limits = append(limits, limit)
			return nil, nil
		},
	}
	svc := NewService(repo, &fakeDetector{}, &fakeCatalog{}, loc, logger.Nop()).WithTimeProvider(fixedTime{now})
	ctx := context.Background()

	_, err := svc.Upcoming(ctx, 0)
	require.NoError(t, err)
	_, err = svc.Past(ctx, 0)
	require.NoError(t, err)
	_, err = svc.ByClient(ctx, "11999999999", 0)
	require.NoError(t, err)
	_, err = svc.Upcoming(ctx, 10000)
	require.NoError(t, err)

	assert.Equal(t, []int{domain.DefaultUpcomingLimit, domain.DefaultPastLimit, domain.DefaultClientLimit, domain.MaxListLimit}, limits)

	_, err = svc.ByClient(ctx, "  ", 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_CheckAvailability(t *testing.T) {
	detector := &fakeDetector{conflict: true}
	svc := NewService(&fakeRepo{}, detector, &fakeCatalog{}, loc, logger.Nop())
	start := time.Date(2024, 6, 10, 9, 15, 0, 0, loc)

	resp, err := svc.CheckAvailability(context.Background(), objectid.New(), start, 0)
	require.NoError(t, err)

	assert.False(t, resp.Available)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, start.Add(30*time.Minute), resp.End)
	assert.Equal(t, []int{domain.DefaultDurationMinutes}, detector.calls)
}

func TestService_DailyScheduleGroupsByBarber(t *testing.T) {
	joao := &domain.Barber{ID: objectid.New(), Name: "João Silva", Available: true}
	pedro := &domain.Barber{ID: objectid.New(), Name: "Pedro Santos", Available: true}
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)

	repo := &fakeRepo{findByDateRange: func(context.Context, domain.DateRange, *objectid.ID) ([]*domain.Appointment, error) {
		return []*domain.Appointment{
			{ID: objectid.New(), BarberID: joao.ID, Date: day.Add(9 * time.Hour), DurationMinutes: 30},
			{ID: objectid.New(), BarberID: joao.ID, Date: day.Add(10 * time.Hour), DurationMinutes: 30},
			{ID: objectid.New(), BarberID: objectid.New(), Date: day.Add(11 * time.Hour), DurationMinutes: 30},
		}, nil
	}}
	svc := NewService(repo, &fakeDetector{}, &fakeCatalog{barbers: []*domain.Barber{joao, pedro}}, loc, logger.Nop())

	resp, err := svc.DailySchedule(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", resp.Date)
	require.Len(t, resp.Schedules, 2)
	assert.Equal(t, "João Silva", resp.Schedules[0].Barber.Name)
	assert.Len(t, resp.Schedules[0].Appointments, 2)
	assert.Empty(t, resp.Schedules[1].Appointments)
	assert.NotNil(t, resp.Schedules[1].Appointments)
}
