package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

type AppointmentService interface {
	CheckAvailability(ctx context.Context, barberID objectid.ID, start time.Time, durationMinutes int) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
