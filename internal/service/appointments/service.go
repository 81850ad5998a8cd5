package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/appointments/models"
	catalogModels "github.com/m04kA/SMC-BarberScheduler/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// Service сервис чтения записей, удаления и проверки доступности.
// Создание, изменение и смена статуса выполняются в usecase.
type Service struct {
	repo         AppointmentRepository
	detector     ConflictDetector
	catalog      CatalogService
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	repo AppointmentRepository,
	detector ConflictDetector,
	catalog CatalogService,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		detector:     detector,
		catalog:      catalog,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByDate записи за календарный день по возрастанию начала, включая отмененные.
// Если указан BarberID, только записи этого барбера.
func (s *Service) GetByDate(ctx context.Context, req *models.GetByDateRequest) (*models.AppointmentListResponse, error) {
	rng := domain.DayRange(req.Date, s.location)
	s.logger.Info("GetByDate: fetching appointments date=%s barber=%v", rng.From.Format(domain.DateFormat), req.BarberID)

	list, err := s.repo.FindByDateRange(ctx, rng, req.BarberID)
	if err != nil {
		s.logger.Error("GetByDate: repository error date=%s: %v", rng.From.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("GetByDate: %w", err)
	}

	return models.FromDomainList(list, s.location), nil
}

// GetByID запись по ID
func (s *Service) GetByID(ctx context.Context, id objectid.ID) (*models.AppointmentResponse, error) {
	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, fmt.Errorf("%w: id=%s", ErrAppointmentNotFound, id)
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	return models.FromDomain(appointment, s.location), nil
}

// Search поиск по подстроке имени и телефона клиента, периоду и статусу.
// Не более domain.SearchLimit записей, сначала новые.
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.AppointmentListResponse, error) {
	filter := domain.SearchFilter{
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientPhone: strings.TrimSpace(req.ClientPhone),
		Limit:       domain.SearchLimit,
	}

	if req.StartDate != nil {
		from := domain.StartOfDay(*req.StartDate, s.location)
		filter.From = &from
	}
	if req.EndDate != nil {
		to := domain.StartOfDay(*req.EndDate, s.location).AddDate(0, 0, 1)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, domain.NewValidationError("startDate must not be after endDate")
	}
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Search: invalid status=%s", *req.Status)
			return nil, err
		}
		filter.Status = &status
	}

	list, err := s.repo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("Search: %w", err)
	}

	s.logger.Info("Search: found %d appointments", len(list))
	return models.FromDomainList(list, s.location), nil
}

// Upcoming ближайшие запланированные записи
func (s *Service) Upcoming(ctx context.Context, limit int) (*models.AppointmentListResponse, error) {
	list, err := s.repo.FindUpcoming(ctx, s.timeProvider.Now(), normalizeLimit(limit, domain.DefaultUpcomingLimit))
	if err != nil {
		s.logger.Error("Upcoming: repository error: %v", err)
		return nil, fmt.Errorf("Upcoming: %w", err)
	}

	return models.FromDomainList(list, s.location), nil
}

// Past прошедшие завершенные и отмененные записи
func (s *Service) Past(ctx context.Context, limit int) (*models.AppointmentListResponse, error) {
	list, err := s.repo.FindPast(ctx, s.timeProvider.Now(), normalizeLimit(limit, domain.DefaultPastLimit))
	if err != nil {
		s.logger.Error("Past: repository error: %v", err)
		return nil, fmt.Errorf("Past: %w", err)
	}

	return models.FromDomainList(list, s.location), nil
}

// ByClient записи клиента по телефону, сначала новые
func (s *Service) ByClient(ctx context.Context, phone string, limit int) (*models.AppointmentListResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domain.NewValidationError("client phone is required")
	}

	list, err := s.repo.FindByClient(ctx, phone, normalizeLimit(limit, domain.DefaultClientLimit))
	if err != nil {
		s.logger.Error("ByClient: repository error: %v", err)
		return nil, fmt.Errorf("ByClient: %w", err)
	}

	return models.FromDomainList(list, s.location), nil
}

// Delete физически удаляет запись. Отмена выполняется через transition_appointment.
func (s *Service) Delete(ctx context.Context, id objectid.ID) error {
	s.logger.Info("Delete: deleting appointment id=%s", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Delete: appointment id=%s not found", id)
			return fmt.Errorf("%w: id=%s", ErrAppointmentNotFound, id)
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("Delete: %w", err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%s", id)
	return nil
}

// CheckAvailability true, если у барбера нет неотмененных записей, пересекающихся с [start, start+duration)
func (s *Service) CheckAvailability(
	ctx context.Context,
	barberID objectid.ID,
	start time.Time,
	durationMinutes int,
) (*models.AvailabilityResponse, error) {
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}

	conflict, err := s.detector.HasConflict(ctx, barberID, start, durationMinutes, nil)
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			s.logger.Error("CheckAvailability: barber_id=%s: %v", barberID, err)
		}
		return nil, fmt.Errorf("CheckAvailability: %w", err)
	}

	interval := domain.NewInterval(start, durationMinutes)
	return &models.AvailabilityResponse{
		BarberID:        barberID,
		Start:           interval.Start.In(s.location),
		End:             interval.End.In(s.location),
		DurationMinutes: durationMinutes,
		Available:       !conflict,
	}, nil
}

// DailySchedule записи дня, сгруппированные по доступным барберам (барберы по имени)
func (s *Service) DailySchedule(ctx context.Context, date time.Time) (*models.DailyScheduleResponse, error) {
	rng := domain.DayRange(date, s.location)
	day := rng.From.Format(domain.DateFormat)

	barbers, err := s.catalog.ListAvailableBarbers(ctx)
	if err != nil {
		s.logger.Error("DailySchedule: failed to list barbers: %v", err)
		return nil, fmt.Errorf("DailySchedule: %w", err)
	}

	list, err := s.repo.FindByDateRange(ctx, rng, nil)
	if err != nil {
		s.logger.Error("DailySchedule: repository error date=%s: %v", day, err)
		return nil, fmt.Errorf("DailySchedule: %w", err)
	}

	byBarber := make(map[objectid.ID][]*models.AppointmentResponse, len(barbers))
	for _, a := range list {
		byBarber[a.BarberID] = append(byBarber[a.BarberID], models.FromDomain(a, s.location))
	}

	schedules := make([]*models.BarberScheduleResponse, 0, len(barbers))
	for _, b := range barbers {
		appointments := byBarber[b.ID]
		if appointments == nil {
			appointments = []*models.AppointmentResponse{}
		}
		schedules = append(schedules, &models.BarberScheduleResponse{
			Barber:       catalogModels.FromDomainBarber(b),
			Appointments: appointments,
		})
	}

	s.logger.Info("DailySchedule: date=%s barbers=%d appointments=%d", day, len(barbers), len(list))
	return &models.DailyScheduleResponse{Date: day, Schedules: schedules}, nil
}

// normalizeLimit подставляет значение по умолчанию и ограничивает размер выборки
func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > domain.MaxListLimit {
		return domain.MaxListLimit
	}
	return limit
}
