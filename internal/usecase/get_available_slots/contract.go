package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// FindByBarberAndWindow записи барбера, пересекающиеся с окном (включая отмененные)
	FindByBarberAndWindow(ctx context.Context, barberID objectid.ID, window domain.Interval) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
