package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/pkg/logger"
)

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		db         PingFunc
		redis      PingFunc
		wantStatus int
		want       Response
	}{
		{
			name:       "database up",
			db:         ok,
			wantStatus: http.StatusOK,
			want:       Response{Status: "ok", Database: "up"},
		},
		{
			name:       "database down",
			db:         down,
			wantStatus: http.StatusServiceUnavailable,
			want:       Response{Status: "unavailable", Database: "down"},
		},
		{
			name:       "redis down",
			db:         ok,
			redis:      down,
			wantStatus: http.StatusServiceUnavailable,
			want:       Response{Status: "unavailable", Database: "up", Redis: "down"},
		},
		{
			name:       "both up",
			db:         ok,
			redis:      ok,
			wantStatus: http.StatusOK,
			want:       Response{Status: "ok", Database: "up", Redis: "up"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.db, logger.Nop())
			if tt.redis != nil {
				h.WithRedis(tt.redis)
			}

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}
