package check_availability

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidDate     = "некорректная дата, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
	msgInvalidDuration = "некорректная длительность"
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

// Handle GET /api/v1/barbers/{barberId}/availability?date=&duration=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawBarberID := mux.Vars(r)["barberId"]
	barberID, err := domain.ParseID("barber id", rawBarberID)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/availability - Invalid barber ID: %s", rawBarberID)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	start, err := domain.ParseDateTime(r.URL.Query().Get("date"), h.location)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/availability - Invalid date: %s", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := handlers.QueryInt(r, "duration", 0)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), barberID, start, duration)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /barbers/{id}/availability - Failed to check availability: barber_id=%s, error=%v", barberID, err)
		} else {
			h.logger.Warn("GET /barbers/{id}/availability - Rejected: barber_id=%s, error=%v", barberID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, availability)
}
