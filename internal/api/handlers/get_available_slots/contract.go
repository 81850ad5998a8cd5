package get_available_slots

import (
	"context"
	"iter"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberScheduler/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (iter.Seq[domain.Slot], error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
