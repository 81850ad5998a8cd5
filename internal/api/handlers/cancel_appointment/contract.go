package cancel_appointment

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
)

type TransitionUseCase interface {
	Cancel(ctx context.Context, id, reason string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
