package get_past_appointments

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
)

type AppointmentService interface {
	Past(ctx context.Context, limit int) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
