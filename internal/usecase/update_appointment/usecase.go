package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/ptr"
)

// UseCase use case для частичного обновления записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalog         CatalogService
	detector        ConflictDetector
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
	catalog CatalogService,
	detector ConflictDetector,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalog:         catalog,
		detector:        detector,
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

// Execute применяет к записи только заданные поля.
// Если меняются дата, длительность или барбер, интервал повторно проверяется на пересечения
// (сама запись при проверке исключается).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("UpdateAppointment: id=%s", req.ID)

	// 1. Валидация заданных полей
	id, changes, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed for id=%s: %v", req.ID, err)
		return nil, err
	}
	if changes.IsEmpty() {
		return nil, fmt.Errorf("%w: id=%s", ErrNothingToUpdate, id)
	}

	// 2. Блокируем барбера, на которого попадет запись
	current, err := uc.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, uc.wrapFindError(id, err)
	}
	lockBarber := current.BarberID
	if changes.BarberID != nil {
		lockBarber = *changes.BarberID
	}

	var updated *domain.Appointment
	var diff domain.AppointmentChanges
	err = uc.locker.WithBarberLock(ctx, lockBarber, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			// Перечитываем под блокировкой
			current, err := uc.appointmentRepo.FindByID(txCtx, id)
			if err != nil {
				return uc.wrapFindError(id, err)
			}

			diff = changes.Diff(current)
			if diff.IsEmpty() {
				return fmt.Errorf("%w: id=%s", ErrNothingToUpdate, id)
			}

			// Снимок каталога обновляется только для действительно смененных барбера или услуги
			if err := uc.resolveCatalog(txCtx, &diff, changes.Price != nil); err != nil {
				return err
			}
			diff = diff.Diff(current)

			if diff.Status != nil && !current.Status.CanTransitionTo(*diff.Status) {
				return domain.NewValidationError(
					fmt.Sprintf("cannot change status from %s to %s", current.Status, *diff.Status))
			}

			merged := diff.Apply(current)
			if diff.TouchesSchedule() && merged.IsActive() {
				conflict, err := uc.detector.FindConflict(txCtx, merged.BarberID, merged.Date, merged.DurationMinutes, &current.ID)
				if err != nil {
					return err
				}
				if conflict != nil {
					return domain.NewConflictError(merged.BarberID, conflict, uc.location)
				}
			}

			updated, err = uc.appointmentRepo.Update(txCtx, id, diff, uc.timeProvider.Now())
			return err
		})
	})

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			uc.metrics.ObserveConflict("update")
			uc.logger.Warn("UpdateAppointment: conflict for id=%s: %v", id, err)
			return nil, err
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoOp):
			uc.logger.Warn("UpdateAppointment: id=%s: %v", id, err)
			return nil, err
		case errors.Is(err, domain.ErrStorage):
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%s: %v", id, err)
			return nil, err
		default:
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	if diff.Status != nil {
		uc.metrics.ObserveTransition(string(*diff.Status))
	}
	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%s", id)

	return models.FromDomain(updated, uc.location), nil
}

// resolveCatalog проверяет нового барбера и услугу и подставляет их названия.
// При смене услуги без явной цены берется цена из каталога.
// changes уже очищены от значений, совпадающих с записью; explicitPrice - цена была в запросе.
func (uc *UseCase) resolveCatalog(ctx context.Context, changes *domain.AppointmentChanges, explicitPrice bool) error {
	verr := &domain.ValidationError{}

	if changes.BarberID != nil {
		barber, err := uc.catalog.GetBarber(ctx, *changes.BarberID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			verr.Add("barber does not exist")
		case err != nil:
			uc.logger.Error("UpdateAppointment: failed to get barber id=%s: %v", *changes.BarberID, err)
			return err
		default:
			changes.BarberName = ptr.Ptr(barber.Name)
		}
	}

	if changes.ServiceID != nil {
		service, err := uc.catalog.GetService(ctx, *changes.ServiceID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			verr.Add("service does not exist")
		case err != nil:
			uc.logger.Error("UpdateAppointment: failed to get service id=%s: %v", *changes.ServiceID, err)
			return err
		default:
			changes.ServiceName = ptr.Ptr(service.Name)
			if !explicitPrice {
				changes.Price = ptr.Ptr(service.Price)
			}
		}
	}

	return verr.OrNil()
}

func (uc *UseCase) wrapFindError(id objectid.ID, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: id=%s", ErrAppointmentNotFound, id)
	}
	return err
}
