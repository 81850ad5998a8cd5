package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-BarberScheduler/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-BarberScheduler/pkg/logger"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

type fakeUseCase struct {
	execute func(ctx context.Context, req *createAppointment.Request) (*models.AppointmentResponse, error)
	got     *createAppointment.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*models.AppointmentResponse, error) {
	f.got = req
	return f.execute(ctx, req)
}

func TestHandle_Created(t *testing.T) {
	id := objectid.New()
	uc := &fakeUseCase{execute: func(_ context.Context, req *createAppointment.Request) (*models.AppointmentResponse, error) {
		return &models.AppointmentResponse{ID: id, ClientName: req.ClientName, Status: "scheduled"}, nil
	}}
	h := NewHandler(uc, logger.Nop())

	body := `{"clientName":"Ana","clientPhone":"11987654321","date":"2024-06-10T09:00","barberId":"` +
		objectid.New().Hex() + `","serviceId":"` + objectid.New().Hex() + `","duration":45,"price":"35.50"}`
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.AppointmentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, id, resp.ID)

	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 45, *uc.got.DurationMinutes)
	require.NotNil(t, uc.got.Price)
	assert.True(t, uc.got.Price.Equal(decimal.RequireFromString("35.50")))
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{"clientName":`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_ErrorKinds(t *testing.T) {
	existing := &domain.Appointment{ID: objectid.New(), Date: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), DurationMinutes: 30}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: domain.NewValidationError("client name is required", "date is required"), want: http.StatusBadRequest},
		{name: "conflict", err: &domain.ConflictError{Existing: existing}, want: http.StatusConflict},
		{name: "storage", err: domain.ErrStorage, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{execute: func(context.Context, *createAppointment.Request) (*models.AppointmentResponse, error) {
				return nil, tt.err
			}}
			h := NewHandler(uc, logger.Nop())

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(`{}`)))

			assert.Equal(t, tt.want, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}
