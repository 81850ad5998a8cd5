package complete_appointment

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
)

type TransitionUseCase interface {
	Complete(ctx context.Context, id, notes string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
