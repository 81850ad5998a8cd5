package search_appointments

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service  AppointmentService
	location *time.Location
	logger   Logger
}

func NewHandler(service AppointmentService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/appointments/search?clientName=&clientPhone=&startDate=&endDate=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.SearchRequest{
		ClientName:  query.Get("clientName"),
		ClientPhone: query.Get("clientPhone"),
	}

	for _, p := range []struct {
		key string
		dst **time.Time
	}{
		{key: "startDate", dst: &req.StartDate},
		{key: "endDate", dst: &req.EndDate},
	} {
		raw := query.Get(p.key)
		if raw == "" {
			continue
		}
		date, err := domain.ParseDate(raw, h.location)
		if err != nil {
			h.logger.Warn("GET /appointments/search - Invalid %s: %s", p.key, raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		*p.dst = &date
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	list, err := h.service.Search(r.Context(), req)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /appointments/search - Failed to search appointments: error=%v", err)
		} else {
			h.logger.Warn("GET /appointments/search - Rejected: error=%v", err)
		}
		return
	}

	h.logger.Info("GET /appointments/search - Found %d appointments", list.Count)
	handlers.RespondJSON(w, http.StatusOK, list)
}
