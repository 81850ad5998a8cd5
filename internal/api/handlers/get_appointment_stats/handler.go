package get_appointment_stats

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

const msgInvalidRange = "startDate и endDate обязательны, формат YYYY-MM-DD"

type Handler struct {
	service  StatsService
	location *time.Location
	logger   Logger
}

func NewHandler(service StatsService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/appointments/stats?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
// Оба дня включаются в период.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, err := domain.ParseDate(query.Get("startDate"), h.location)
	if err != nil {
		h.logger.Warn("GET /appointments/stats - Invalid startDate: %s", query.Get("startDate"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	end, err := domain.ParseDate(query.Get("endDate"), h.location)
	if err != nil {
		h.logger.Warn("GET /appointments/stats - Invalid endDate: %s", query.Get("endDate"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	stats, err := h.service.GetStats(r.Context(), start, end)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /appointments/stats - Failed to get stats: error=%v", err)
		} else {
			h.logger.Warn("GET /appointments/stats - Rejected: error=%v", err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
