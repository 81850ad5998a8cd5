package transition_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindByID(ctx context.Context, id objectid.ID) (*domain.Appointment, error)
	Update(ctx context.Context, id objectid.ID, changes domain.AppointmentChanges, updatedAt time.Time) (*domain.Appointment, error)
}

// Locker сериализует изменения расписания одного барбера
type Locker interface {
	WithBarberLock(ctx context.Context, barberID objectid.ID, fn func(ctx context.Context) error) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics доменные счетчики
type Metrics interface {
	ObserveTransition(to string)
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
