package get_available_slots

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberScheduler/internal/usecase/get_available_slots"
)

const (
	msgInvalidBarberID = "некорректный ID барбера"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/barbers/{barberId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (minutes, default 30)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawBarberID := mux.Vars(r)["barberId"]
	barberID, err := domain.ParseID("barber id", rawBarberID)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid barber ID: %s", rawBarberID)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /barbers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := domain.ParseDate(dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := handlers.QueryInt(r, "duration", 0)
	if err != nil {
		h.logger.Warn("GET /barbers/{id}/available-slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	req := &getAvailableSlots.Request{BarberID: barberID, Date: date, DurationMinutes: duration}
	slots, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status >= http.StatusInternalServerError {
			h.logger.Error("GET /barbers/{id}/available-slots - Failed to get slots: barber_id=%s, error=%v", barberID, err)
		} else {
			h.logger.Warn("GET /barbers/{id}/available-slots - Rejected: barber_id=%s, error=%v", barberID, err)
		}
		return
	}

	response := FromUseCaseResponse(req, slots, h.location)

	h.logger.Info("GET /barbers/{id}/available-slots - Slots retrieved successfully: barber_id=%s, date=%s, slots_count=%d",
		barberID, response.Date, response.Count)
	handlers.RespondJSON(w, http.StatusOK, response)
}
