package update_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("update_appointment: %w", domain.ErrNotFound)

	// ErrNothingToUpdate запрос не меняет ни одного поля
	ErrNothingToUpdate = fmt.Errorf("update_appointment: %w", domain.ErrNoOp)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
