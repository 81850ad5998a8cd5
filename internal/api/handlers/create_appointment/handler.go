package create_appointment

import (
	"net/http"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appointment, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("POST /appointments - Failed to create appointment: barber_id=%s, error=%v", req.BarberID, err)
		} else {
			h.logger.Warn("POST /appointments - Rejected: barber_id=%s, date=%s, status=%d, error=%v",
				req.BarberID, req.Date, status, err)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, barber_id=%s", appointment.ID, appointment.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, appointment)
}
