package appointment

import (
	"fmt"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment.repository: appointment not found", domain.ErrNotFound)

	// ErrOverlap нарушено ограничение непересечения записей барбера (SQLSTATE 23P01)
	ErrOverlap = fmt.Errorf("%w: appointment.repository: overlapping appointment for barber", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = fmt.Errorf("%w: appointment.repository: failed to build query", domain.ErrStorage)

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = fmt.Errorf("%w: appointment.repository: failed to execute query", domain.ErrStorage)

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = fmt.Errorf("%w: appointment.repository: failed to scan row", domain.ErrStorage)
)
