package get_daily_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
)

type AppointmentService interface {
	DailySchedule(ctx context.Context, date time.Time) (*models.DailyScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
