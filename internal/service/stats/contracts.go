package stats

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// AppointmentRepository агрегирующие запросы по записям
type AppointmentRepository interface {
	CountBy(ctx context.Context, key domain.GroupKey, rng domain.DateRange) ([]domain.GroupCount, error)
	SumRevenue(ctx context.Context, rng domain.DateRange) (decimal.Decimal, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
