package delete_appointment

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

// Handle DELETE /api/v1/appointments/{id}
// Физическое удаление. Для отмены используется PATCH /appointments/{id}/cancel.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["id"]

	id, err := domain.ParseID("appointment id", rawID)
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %s", rawID)
		handlers.RespondDomainError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment: id=%s, error=%v", id, err)
		} else {
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: id=%s", id)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}
