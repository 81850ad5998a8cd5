package get_appointment

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	id, err := domain.ParseID("appointment id", rawID)
	if err != nil {
		h.logger.Warn("GET /appointments/{id} - Invalid appointment ID: %s", rawID)
		handlers.RespondDomainError(w, err)
		return
	}

	appointment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /appointments/{id} - Failed to get appointment: id=%s, error=%v", id, err)
		} else {
			h.logger.Warn("GET /appointments/{id} - Appointment not found: id=%s", id)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, appointment)
}
