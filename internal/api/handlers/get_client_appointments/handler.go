package get_client_appointments

import (
	"net/http"

	"github.com/gorilla/mux"

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

// Handle GET /api/v1/clients/{phone}/appointments?limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil {
		h.logger.Warn("GET /clients/{phone}/appointments - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLimit)
		return
	}

	list, err := h.service.ByClient(r.Context(), phone, limit)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /clients/{phone}/appointments - Failed to get appointments: error=%v", err)
		} else {
			h.logger.Warn("GET /clients/{phone}/appointments - Rejected: error=%v", err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
