package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// UseCase use case для получения свободных слотов барбера на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	location        *time.Location
	clip            bool
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// clip включает отсечение слотов, которые заканчиваются после закрытия.
func NewUseCase(appointmentRepo AppointmentRepository, location *time.Location, clip bool, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		location:        location,
		clip:            clip,
		logger:          logger,
	}
}

// Execute читает записи барбера один раз и возвращает ленивую последовательность свободных слотов.
// Повторный обход последовательности не обращается к хранилищу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (iter.Seq[domain.Slot], error) {
	uc.logger.Info("GetAvailableSlots: barber=%s, date=%s, duration=%d",
		req.BarberID, req.Date.In(uc.location).Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultDurationMinutes
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Занятые интервалы: окно захватывает записи, которые начались до открытия
	// или пересекают слоты, выходящие за закрытие
	window := workday(req.Date, uc.location)
	fetch := domain.Interval{
		Start: window.Start,
		End:   window.End.Add(time.Duration(req.DurationMinutes) * time.Minute),
	}

	appointments, err := uc.appointmentRepo.FindByBarberAndWindow(ctx, req.BarberID, fetch)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments barber=%s: %v", req.BarberID, err)
		if errors.Is(err, domain.ErrStorage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	busy := busyIntervals(appointments)
	uc.logger.Info("GetAvailableSlots: barber=%s has %d busy intervals", req.BarberID, len(busy))

	return generateSlots(window, req.DurationMinutes, busy, uc.clip), nil
}

// validateRequest проверяет длительность и идентификатор барбера
func validateRequest(req *Request) error {
	verr := &domain.ValidationError{}

	if req.BarberID.IsZero() {
		verr.Add("barber id is required")
	}
	if req.DurationMinutes < 0 {
		verr.Add("duration must be greater than zero")
	}
	if req.DurationMinutes > domain.MaxDurationMinutes {
		verr.Add(fmt.Sprintf("duration must be at most %d minutes", domain.MaxDurationMinutes))
	}
	if req.Date.IsZero() {
		verr.Add("date is required")
	}

	return verr.OrNil()
}
