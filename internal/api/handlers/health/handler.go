package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
)

const (
	pingTimeout = 2 * time.Second

	stateUp   = "up"
	stateDown = "down"
)

// Response состояние сервиса. Redis присутствует только если он настроен.
type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis,omitempty"`
}

type Handler struct {
	db     Pinger
	redis  Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// WithRedis добавляет проверку redis
func (h *Handler) WithRedis(redis Pinger) *Handler {
	h.redis = redis
	return h
}

// Handle GET /api/v1/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := Response{Status: "ok", Database: stateUp}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - Database is unreachable: %v", err)
		resp.Database = stateDown
		status = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		resp.Redis = stateUp
		if err := h.redis.PingContext(ctx); err != nil {
			h.logger.Error("GET /health - Redis is unreachable: %v", err)
			resp.Redis = stateDown
			status = http.StatusServiceUnavailable
		}
	}

	if status != http.StatusOK {
		resp.Status = "unavailable"
	}
	handlers.RespondJSON(w, status, resp)
}
