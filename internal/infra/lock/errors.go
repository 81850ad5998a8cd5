package lock

import (
	"fmt"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

var (
	// ErrLockNotAcquired блокировку барбера не удалось захватить за отведенное время
	ErrLockNotAcquired = fmt.Errorf("%w: lock: barber schedule lock not acquired", domain.ErrStorage)

	// ErrLockBackend ошибка хранилища блокировок
	ErrLockBackend = fmt.Errorf("%w: lock: backend error", domain.ErrStorage)
)
