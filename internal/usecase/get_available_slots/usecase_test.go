package get_available_slots

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/logger"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

type fakeRepo struct {
	calls   int
	window  domain.Interval
	result  []*domain.Appointment
	findErr error
}

func (r *fakeRepo) FindByBarberAndWindow(_ context.Context, _ objectid.ID, window domain.Interval) ([]*domain.Appointment, error) {
	r.calls++
	r.window = window
	return r.result, r.findErr
}

func TestExecute_ScenarioAroundNineAM(t *testing.T) {
	barberID := objectid.New()
	repo := &fakeRepo{result: []*domain.Appointment{
		{BarberID: barberID, Date: at(9, 0), DurationMinutes: 30, Status: domain.StatusScheduled},
	}}
	uc := NewUseCase(repo, loc, false, logger.Nop())

	req := &Request{BarberID: barberID, Date: at(0, 0), DurationMinutes: 30}
	seq, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	got := starts(slices.Collect(seq))
	assert.Contains(t, got, "09:30")
	assert.NotContains(t, got, "09:00")
	assert.NotContains(t, got, "09:15")

	// Повторный обход не читает хранилище и дает тот же результат
	assert.Equal(t, got, starts(slices.Collect(seq)))
	assert.Equal(t, 1, repo.calls)

	assert.True(t, repo.window.Start.Equal(at(8, 0)))
	assert.True(t, repo.window.End.Equal(at(20, 30)))
}

func TestExecute_DefaultDuration(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, loc, false, logger.Nop())

	req := &Request{BarberID: objectid.New(), Date: at(0, 0)}
	seq, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultDurationMinutes, req.DurationMinutes)
	for s := range seq {
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, loc, false, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{DurationMinutes: -15})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{
		"barber id is required",
		"duration must be greater than zero",
		"date is required",
	}, verr.Rules)
}

func TestExecute_StorageError(t *testing.T) {
	repo := &fakeRepo{findErr: errors.Join(domain.ErrStorage, errors.New("connection refused"))}
	uc := NewUseCase(repo, loc, false, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{BarberID: objectid.New(), Date: at(0, 0), DurationMinutes: 30})
	assert.ErrorIs(t, err, domain.ErrStorage)

	repo.findErr = errors.New("boom")
	_, err = uc.Execute(context.Background(), &Request{BarberID: objectid.New(), Date: at(0, 0), DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInternal)
}
