package delete_appointment

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

type AppointmentService interface {
	Delete(ctx context.Context, id objectid.ID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
