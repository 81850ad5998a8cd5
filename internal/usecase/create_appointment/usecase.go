package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
)

// UseCase use case для создания записи
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

// Execute выполняет use case создания записи.
// Проверка конфликта и вставка выполняются под блокировкой барбера в сериализуемой транзакции,
// поэтому две параллельные записи на пересекающееся время не могут пройти обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.AppointmentResponse, error) {
	uc.logger.Info("CreateAppointment: barber=%s, service=%s, date=%s", req.BarberID, req.ServiceID, req.Date)

	// 1. Валидация входных данных (все правила сразу)
	v, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Барбер и услуга должны существовать в каталоге
	if err := uc.resolveCatalog(ctx, v); err != nil {
		return nil, err
	}

	// 3. Собираем запись
	now := uc.timeProvider.Now()
	appointment := &domain.Appointment{
		ClientName:      v.clientName,
		ClientPhone:     v.clientPhone,
		Date:            v.start,
		DurationMinutes: v.durationMinutes,
		BarberID:        v.barberID,
		ServiceID:       v.serviceID,
		BarberName:      v.barberName,
		ServiceName:     v.serviceName,
		Price:           v.price,
		Status:          domain.StatusScheduled,
		Notes:           v.notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// 4. Проверка конфликта и сохранение
	err = uc.locker.WithBarberLock(ctx, v.barberID, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			conflict, err := uc.detector.FindConflict(txCtx, v.barberID, v.start, v.durationMinutes, nil)
			if err != nil {
				return err
			}
			if conflict != nil {
				return domain.NewConflictError(v.barberID, conflict, uc.location)
			}

			if _, err := uc.appointmentRepo.Insert(txCtx, appointment); err != nil {
				return err
			}
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.metrics.ObserveConflict("create")
			uc.logger.Warn("CreateAppointment: conflict for barber=%s at %s: %v",
				v.barberID, v.start.Format(time.RFC3339), err)
			return nil, err
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		if errors.Is(err, domain.ErrStorage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.metrics.ObserveAppointmentCreated()
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", appointment.ID)

	return models.FromDomain(appointment, uc.location), nil
}

// resolveCatalog проверяет барбера и услугу и заполняет пустые денормализованные названия
func (uc *UseCase) resolveCatalog(ctx context.Context, v *validRequest) error {
	verr := &domain.ValidationError{}

	barber, err := uc.catalog.GetBarber(ctx, v.barberID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		verr.Add("barber does not exist")
	case err != nil:
		uc.logger.Error("CreateAppointment: failed to get barber id=%s: %v", v.barberID, err)
		return err
	case v.barberName == "":
		v.barberName = barber.Name
	}

	service, err := uc.catalog.GetService(ctx, v.serviceID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		verr.Add("service does not exist")
	case err != nil:
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", v.serviceID, err)
		return err
	case v.serviceName == "":
		v.serviceName = service.Name
	}

	if err := verr.OrNil(); err != nil {
		uc.logger.Warn("CreateAppointment: catalog validation failed: %v", err)
		return err
	}
	return nil
}
