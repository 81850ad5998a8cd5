package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindByID(ctx context.Context, id objectid.ID) (*domain.Appointment, error)
	FindByDateRange(ctx context.Context, rng domain.DateRange, barberID *objectid.ID) ([]*domain.Appointment, error)
	FindByClient(ctx context.Context, phone string, limit int) ([]*domain.Appointment, error)
	FindUpcoming(ctx context.Context, now time.Time, limit int) ([]*domain.Appointment, error)
	FindPast(ctx context.Context, now time.Time, limit int) ([]*domain.Appointment, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Appointment, error)
	Delete(ctx context.Context, id objectid.ID) error
}

// ConflictDetector интерфейс детектора конфликтов расписания
type ConflictDetector interface {
	HasConflict(ctx context.Context, barberID objectid.ID, start time.Time, durationMinutes int, excludeID *objectid.ID) (bool, error)
}

// CatalogService интерфейс каталога барберов
type CatalogService interface {
	ListAvailableBarbers(ctx context.Context) ([]*domain.Barber, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
