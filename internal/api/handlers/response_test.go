package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
)

func TestRespondDomainError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: domain.NewValidationError("client name is required"), want: http.StatusBadRequest},
		{name: "wrapped not found", err: fmt.Errorf("svc: %w", domain.ErrNotFound), want: http.StatusNotFound},
		{name: "conflict sentinel", err: fmt.Errorf("repo: %w", domain.ErrConflict), want: http.StatusConflict},
		{name: "no-op", err: domain.ErrNoOp, want: http.StatusUnprocessableEntity},
		{name: "storage", err: fmt.Errorf("%w: connection reset", domain.ErrStorage), want: http.StatusServiceUnavailable},
		{name: "serialization", err: fmt.Errorf("%w: after 3 retries", txmanager.ErrSerialization), want: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			status := RespondDomainError(w, tt.err)

			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestRespondDomainError_Bodies(t *testing.T) {
	w := httptest.NewRecorder()
	RespondDomainError(w, domain.NewValidationError("client name is required", "date is required"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, []string{"client name is required", "date is required"}, body.Rules)

	existing := &domain.Appointment{
		ID:              objectid.New(),
		Date:            time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}
	w = httptest.NewRecorder()
	RespondDomainError(w, fmt.Errorf("create: %w", &domain.ConflictError{Existing: existing}))

	body = ErrorResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.NotNil(t, body.Conflict)
	assert.Equal(t, existing.ID, body.Conflict.AppointmentID)
	assert.True(t, body.Conflict.End.Equal(time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)))
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "Ana", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana","admin":true}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=15&bad=x", nil)

	v, err := QueryInt(r, "limit", 10)
	require.NoError(t, err)
	assert.Equal(t, 15, v)

	v, err = QueryInt(r, "missing", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	_, err = QueryInt(r, "bad", 10)
	assert.Error(t, err)
}
