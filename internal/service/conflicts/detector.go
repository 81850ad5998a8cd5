package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// Detector проверяет пересечение кандидата с неотмененными записями барбера.
// Все решения сводятся к domain.Interval.Overlaps: касание интервалов конфликтом не считается.
type Detector struct {
	repo AppointmentRepository
}

// NewDetector создает детектор конфликтов
func NewDetector(repo AppointmentRepository) *Detector {
	return &Detector{repo: repo}
}

// FindConflict возвращает первую (по времени начала) неотмененную запись барбера, пересекающуюся
// с [start, start+durationMinutes), или nil. excludeID исключает перемещаемую запись из проверки.
// Внутри транзакции найденные строки блокируются репозиторием.
func (d *Detector) FindConflict(
	ctx context.Context,
	barberID objectid.ID,
	start time.Time,
	durationMinutes int,
	excludeID *objectid.ID,
) (*domain.Appointment, error) {
	if durationMinutes <= 0 {
		return nil, domain.NewValidationError("duration must be greater than zero")
	}

	candidate := domain.NewInterval(start, durationMinutes)

	existing, err := d.repo.FindByBarberAndWindow(ctx, barberID, candidate)
	if err != nil {
		return nil, fmt.Errorf("FindConflict: barber_id=%s: %w", barberID, err)
	}

	for _, a := range existing {
		if !a.IsActive() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if candidate.Overlaps(a.Interval()) {
			return a, nil
		}
	}

	return nil, nil
}

// HasConflict true, если кандидат пересекается хотя бы с одной неотмененной записью барбера
func (d *Detector) HasConflict(
	ctx context.Context,
	barberID objectid.ID,
	start time.Time,
	durationMinutes int,
	excludeID *objectid.ID,
) (bool, error) {
	conflict, err := d.FindConflict(ctx, barberID, start, durationMinutes, excludeID)
	if err != nil {
		return false, err
	}
	return conflict != nil, nil
}
