package lock

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// Locker сериализует изменения расписания одного барбера
type Locker interface {
	WithBarberLock(ctx context.Context, barberID objectid.ID, fn func(ctx context.Context) error) error
}

// WaitObserver получает время ожидания блокировки (*metrics.Metrics)
type WaitObserver interface {
	ObserveLockWait(d time.Duration, acquired bool)
}
