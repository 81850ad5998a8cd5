package conflicts

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// AppointmentRepository источник записей барбера в окне времени
type AppointmentRepository interface {
	FindByBarberAndWindow(ctx context.Context, barberID objectid.ID, window domain.Interval) ([]*domain.Appointment, error)
}
