package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id objectid.ID) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
