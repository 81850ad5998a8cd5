package get_upcoming_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
)

const msgInvalidLimit = "некорректный limit"

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

// Handle GET /api/v1/appointments/upcoming?limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil {
		h.logger.Warn("GET /appointments/upcoming - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLimit)
		return
	}

	list, err := h.service.Upcoming(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /appointments/upcoming - Failed to get appointments: error=%v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
