package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/ptr"
)

func TestAppointmentStatus_Transitions(t *testing.T) {
	assert.True(t, StatusScheduled.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusScheduled.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusScheduled.CanTransitionTo(StatusScheduled))

	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, to := range []AppointmentStatus{StatusScheduled, StatusCompleted, StatusCancelled} {
			assert.False(t, terminal.CanTransitionTo(to), "%s -> %s", terminal, to)
		}
	}

	assert.False(t, AppointmentStatus("agendado").IsValid())
}

func TestAppointmentChanges_DiffDropsUnchangedFields(t *testing.T) {
	date := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	current := &Appointment{
		ClientName:      "Ana",
		ClientPhone:     "11999999999",
		Date:            date,
		DurationMinutes: 30,
		Price:           decimal.NewFromInt(35),
		Status:          StatusScheduled,
	}

	same := AppointmentChanges{
		ClientName:      ptr.Ptr("Ana"),
		Date:            ptr.Ptr(date.In(time.FixedZone("X", 3600))),
		DurationMinutes: ptr.Ptr(30),
		Price:           ptr.Ptr(decimal.RequireFromString("35.00")),
	}
	assert.True(t, same.Diff(current).IsEmpty())

	changed := AppointmentChanges{
		ClientName: ptr.Ptr("Ana"),
		Notes:      ptr.Ptr("vip"),
	}
	diff := changed.Diff(current)
	assert.Nil(t, diff.ClientName)
	require.NotNil(t, diff.Notes)
	assert.Equal(t, "vip", *diff.Notes)
	assert.False(t, diff.TouchesSchedule())
}

func TestAppointmentChanges_ApplyDoesNotMutate(t *testing.T) {
	current := &Appointment{ClientName: "Ana", DurationMinutes: 30, BarberID: objectid.New()}
	newBarber := objectid.New()

	merged := AppointmentChanges{BarberID: &newBarber, DurationMinutes: ptr.Ptr(45)}.Apply(current)

	assert.Equal(t, newBarber, merged.BarberID)
	assert.Equal(t, 45, merged.DurationMinutes)
	assert.Equal(t, 30, current.DurationMinutes)
	assert.NotEqual(t, newBarber, current.BarberID)
}

func TestErrorKinds(t *testing.T) {
	v := NewValidationError("client name is required")
	wrapped := fmt.Errorf("create: %w", v)
	assert.True(t, errors.Is(wrapped, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, []string{"client name is required"}, ve.Rules)

	c := &ConflictError{Existing: &Appointment{Date: time.Now(), DurationMinutes: 30}}
	assert.True(t, errors.Is(fmt.Errorf("x: %w", c), ErrConflict))
	assert.False(t, errors.Is(c, ErrValidation))

	assert.NoError(t, (&ValidationError{}).OrNil())
	var nilErr *ValidationError
	assert.NoError(t, nilErr.OrNil())
}

func TestNewConflictError_ConvertsToSalonZone(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)
	existing := &Appointment{ID: objectid.New(), Date: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC), DurationMinutes: 30}

	c := NewConflictError(existing.BarberID, existing, brt)

	require.NotNil(t, c.Existing)
	assert.Equal(t, brt, c.Existing.Date.Location())
	assert.Equal(t, "2024-06-10T09:00:00-03:00", c.Existing.Date.Format(time.RFC3339))
	assert.Equal(t, "2024-06-10T09:30:00-03:00", c.Existing.End().Format(time.RFC3339))
	// Исходная запись не меняется
	assert.Equal(t, time.UTC, existing.Date.Location())

	assert.Nil(t, NewConflictError(objectid.New(), nil, brt).Existing)
}

func TestParseID(t *testing.T) {
	_, err := ParseID("barber id", "[object Object]")
	assert.ErrorIs(t, err, ErrValidation)

	id, err := ParseID("barber id", " 66670b1c2f4e8a0012345678 ")
	require.NoError(t, err)
	assert.Equal(t, "66670b1c2f4e8a0012345678", id.Hex())
}

func TestDayRanges(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	day := time.Date(2024, 6, 10, 23, 30, 0, 0, loc)

	r := DayRange(day, loc)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, loc), r.From)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, loc), r.To)

	inc := InclusiveDaysRange(time.Date(2024, 6, 1, 12, 0, 0, 0, loc), time.Date(2024, 6, 3, 0, 0, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, loc), inc.From)
	assert.Equal(t, time.Date(2024, 6, 4, 0, 0, 0, 0, loc), inc.To)
}
