package transition_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// UseCase смена статуса записи: отмена и завершение.
// Переход возможен только из scheduled, время барбера при этом не проверяется:
// отмена освобождает интервал, завершение его не меняет.
type UseCase struct {
	appointmentRepo AppointmentRepository
	locker          Locker
	txManager       TransactionManager
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		locker:          locker,
		txManager:       txManager,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Cancel отменяет запись. В заметки пишется "Cancelled: <reason>" или причина по умолчанию.
func (uc *UseCase) Cancel(ctx context.Context, rawID, reason string) (*models.AppointmentResponse, error) {
	notes := domain.DefaultCancellationNote
	if reason = strings.TrimSpace(reason); reason != "" {
		notes = "Cancelled: " + reason
	}
	return uc.transition(ctx, "CancelAppointment", rawID, domain.StatusCancelled, notes)
}

// Complete завершает запись. В заметки пишется "<notes> (Completed)" или заметка по умолчанию.
func (uc *UseCase) Complete(ctx context.Context, rawID, notes string) (*models.AppointmentResponse, error) {
	result := domain.DefaultCompletionNote
	if notes = strings.TrimSpace(notes); notes != "" {
		result = notes + " (Completed)"
	}
	return uc.transition(ctx, "CompleteAppointment", rawID, domain.StatusCompleted, result)
}

func (uc *UseCase) transition(
	ctx context.Context,
	op string,
	rawID string,
	to domain.AppointmentStatus,
	notes string,
) (*models.AppointmentResponse, error) {
	uc.logger.Info("%s: id=%s", op, rawID)

	id, err := domain.ParseID("appointment id", rawID)
	if err != nil {
		uc.logger.Warn("%s: %v", op, err)
		return nil, err
	}
	if utf8.RuneCountInString(notes) > domain.MaxNotesLength {
		return nil, domain.NewValidationError(fmt.Sprintf("notes must be at most %d characters", domain.MaxNotesLength))
	}

	var updated *domain.Appointment
	err = uc.withAppointmentLock(ctx, id, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			current, err := uc.findByID(txCtx, id)
			if err != nil {
				return err
			}

			if !current.Status.CanTransitionTo(to) {
				return domain.NewValidationError(
					fmt.Sprintf("cannot change status from %s to %s", current.Status, to))
			}

			status := to
			updated, err = uc.appointmentRepo.Update(txCtx, id, domain.AppointmentChanges{
				Status: &status,
				Notes:  &notes,
			}, uc.timeProvider.Now())
			return err
		})
	})

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
			uc.logger.Warn("%s: id=%s: %v", op, id, err)
			return nil, err
		case errors.Is(err, domain.ErrStorage):
			uc.logger.Error("%s: failed to update appointment id=%s: %v", op, id, err)
			return nil, err
		default:
			uc.logger.Error("%s: failed to update appointment id=%s: %v", op, id, err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	uc.metrics.ObserveTransition(string(to))
	uc.logger.Info("%s: appointment id=%s is now %s", op, id, to)

	return models.FromDomain(updated, uc.location), nil
}

// withAppointmentLock выполняет fn под блокировкой барбера, к которому относится запись
func (uc *UseCase) withAppointmentLock(ctx context.Context, id objectid.ID, fn func(ctx context.Context) error) error {
	current, err := uc.findByID(ctx, id)
	if err != nil {
		return err
	}
	return uc.locker.WithBarberLock(ctx, current.BarberID, fn)
}

func (uc *UseCase) findByID(ctx context.Context, id objectid.ID) (*domain.Appointment, error) {
	current, err := uc.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%s", ErrAppointmentNotFound, id)
		}
		return nil, err
	}
	return current, nil
}
