package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

const (
	keyBarbers  = "barbers"
	keyServices = "services"
)

// Service сервис каталога барберов и услуг.
// Каталог меняется редко, поэтому результаты чтения кэшируются на ttl.
type Service struct {
	repo   CatalogRepository
	cache  *cache.Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, ttl, cleanupInterval time.Duration, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache.New(ttl, cleanupInterval),
		logger: logger,
	}
}

// ListBarbers доступные барберы, по имени
func (s *Service) ListBarbers(ctx context.Context) ([]*models.BarberResponse, error) {
	barbers, err := s.ListAvailableBarbers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.BarberResponse, 0, len(barbers))
	for _, b := range barbers {
		result = append(result, models.FromDomainBarber(b))
	}
	return result, nil
}

// ListServices активные услуги, по названию
func (s *Service) ListServices(ctx context.Context) ([]*models.ServiceResponse, error) {
	services, err := s.ListActiveServices(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, models.FromDomainService(svc))
	}
	return result, nil
}

// ListAvailableBarbers доступные барберы в доменной модели
func (s *Service) ListAvailableBarbers(ctx context.Context) ([]*domain.Barber, error) {
	if cached, ok := s.cache.Get(keyBarbers); ok {
		return cached.([]*domain.Barber), nil
	}

	barbers, err := s.repo.ListAvailableBarbers(ctx)
	if err != nil {
		s.logger.Error("ListAvailableBarbers: failed to load barbers: %v", err)
		return nil, fmt.Errorf("ListAvailableBarbers: %w", err)
	}

	s.cache.SetDefault(keyBarbers, barbers)
	return barbers, nil
}

// ListActiveServices активные услуги в доменной модели
func (s *Service) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	if cached, ok := s.cache.Get(keyServices); ok {
		return cached.([]*domain.Service), nil
	}

	services, err := s.repo.ListActiveServices(ctx)
	if err != nil {
		s.logger.Error("ListActiveServices: failed to load services: %v", err)
		return nil, fmt.Errorf("ListActiveServices: %w", err)
	}

	s.cache.SetDefault(keyServices, services)
	return services, nil
}

// GetBarber барбер по ID
func (s *Service) GetBarber(ctx context.Context, id objectid.ID) (*domain.Barber, error) {
	key := "barber:" + id.Hex()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*domain.Barber), nil
	}

	barber, err := s.repo.GetBarber(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%s", ErrBarberNotFound, id)
		}
		s.logger.Error("GetBarber: failed to get barber id=%s: %v", id, err)
		return nil, fmt.Errorf("GetBarber: %w", err)
	}

	s.cache.SetDefault(key, barber)
	return barber, nil
}

// GetService услуга по ID
func (s *Service) GetService(ctx context.Context, id objectid.ID) (*domain.Service, error) {
	key := "service:" + id.Hex()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*domain.Service), nil
	}

	service, err := s.repo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%s", ErrServiceNotFound, id)
		}
		s.logger.Error("GetService: failed to get service id=%s: %v", id, err)
		return nil, fmt.Errorf("GetService: %w", err)
	}

	s.cache.SetDefault(key, service)
	return service, nil
}
