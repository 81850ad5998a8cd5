package get_appointments

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBarberID = "некорректный ID барбера"
)

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

// Handle GET /api/v1/appointments?date=YYYY-MM-DD&barberId=
// Без date возвращаются записи на сегодня.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.GetByDateRequest{Date: time.Now().In(h.location)}
	if raw := query.Get("date"); raw != "" {
		date, err := domain.ParseDate(raw, h.location)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = date
	}

	if raw := query.Get("barberId"); raw != "" {
		barberID, err := domain.ParseID("barber id", raw)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid barber ID: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidBarberID)
			return
		}
		req.BarberID = &barberID
	}

	list, err := h.service.GetByDate(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /appointments - Failed to get appointments: error=%v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
