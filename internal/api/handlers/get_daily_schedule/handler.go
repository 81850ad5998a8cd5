package get_daily_schedule

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
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

// Handle GET /api/v1/schedule/daily?date=YYYY-MM-DD
// Без date возвращается расписание на сегодня.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := time.Now().In(h.location)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := domain.ParseDate(raw, h.location)
		if err != nil {
			h.logger.Warn("GET /schedule/daily - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	schedule, err := h.service.DailySchedule(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /schedule/daily - Failed to build schedule: error=%v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, schedule)
}
