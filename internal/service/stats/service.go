package stats

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/stats/models"
)

// Service агрегатор статистики записей
type Service struct {
	repo      AppointmentRepository
	txManager TransactionManager
	location  *time.Location
	logger    Logger
}

// NewService создает новый экземпляр агрегатора
func NewService(repo AppointmentRepository, txManager TransactionManager, location *time.Location, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		location:  location,
		logger:    logger,
	}
}

// GetStats считает статистику по неотмененным записям, начало которых попадает
// в календарные дни [startDate, endDate] включительно.
// Все запросы выполняются в одной транзакции только для чтения, чтобы срезы были согласованы.
func (s *Service) GetStats(ctx context.Context, startDate, endDate time.Time) (*models.StatsResponse, error) {
	rng := domain.InclusiveDaysRange(startDate, endDate, s.location)
	if !rng.From.Before(rng.To) {
		return nil, domain.NewValidationError("startDate must not be after endDate")
	}

	var stats domain.AppointmentStats
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		groups := []struct {
			key  domain.GroupKey
			dest *[]domain.GroupCount
		}{
			{domain.GroupByStatus, &stats.ByStatus},
			{domain.GroupByBarber, &stats.ByBarber},
			{domain.GroupByService, &stats.ByService},
			{domain.GroupByDay, &stats.ByDay},
		}

		for _, g := range groups {
			counts, err := s.repo.CountBy(ctx, g.key, rng)
			if err != nil {
				return fmt.Errorf("count by %s: %w", g.key, err)
			}
			*g.dest = counts
		}

		revenue, err := s.repo.SumRevenue(ctx, rng)
		if err != nil {
			return fmt.Errorf("sum revenue: %w", err)
		}
		stats.TotalRevenue = revenue

		return nil
	})
	if err != nil {
		s.logger.Error("GetStats: failed to aggregate from=%s to=%s: %v",
			rng.From.Format(time.RFC3339), rng.To.Format(time.RFC3339), err)
		return nil, fmt.Errorf("GetStats: %w", err)
	}

	for _, g := range stats.ByStatus {
		stats.TotalCount += g.Count
	}
	slices.SortFunc(stats.ByDay, func(a, b domain.GroupCount) int {
		return strings.Compare(a.Key, b.Key)
	})

	return models.FromDomain(&stats,
		rng.From.Format(domain.DateFormat),
		rng.To.AddDate(0, 0, -1).Format(domain.DateFormat),
	), nil
}
