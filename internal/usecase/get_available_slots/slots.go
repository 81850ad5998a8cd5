package get_available_slots

import (
	"iter"
	"slices"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// workday рабочее окно дня [Start, End) в зоне салона
func workday(day time.Time, loc *time.Location) domain.Interval {
	d := domain.StartOfDay(day, loc)
	return domain.Interval{
		Start: time.Date(d.Year(), d.Month(), d.Day(), domain.WorkdayStartHour, 0, 0, 0, loc),
		End:   time.Date(d.Year(), d.Month(), d.Day(), domain.WorkdayEndHour, 0, 0, 0, loc),
	}
}

// busyIntervals интервалы неотмененных записей, по возрастанию начала
func busyIntervals(appointments []*domain.Appointment) []domain.Interval {
	busy := make([]domain.Interval, 0, len(appointments))
	for _, a := range appointments {
		if !a.IsActive() {
			continue
		}
		busy = append(busy, a.Interval())
	}

	slices.SortFunc(busy, func(a, b domain.Interval) int {
		return a.Start.Compare(b.Start)
	})
	return busy
}

// generateSlots перебирает начала слотов с шагом domain.SlotStep от начала до конца рабочего дня
// (конец не включается) и отдает только свободные.
//
// Без clip последний слот может выходить за закрытие: 19:45 при длительности 30 дает 19:45-20:15.
// С clip такие слоты не выдаются.
//
// Последовательность можно обходить повторно, результат одинаков.
func generateSlots(window domain.Interval, durationMinutes int, busy []domain.Interval, clip bool) iter.Seq[domain.Slot] {
	return func(yield func(domain.Slot) bool) {
		// first индекс первого интервала, который еще может пересечься с текущим или следующими слотами
		first := 0

		for start := window.Start; start.Before(window.End); start = start.Add(domain.SlotStep) {
			candidate := domain.NewInterval(start, durationMinutes)
			if clip && candidate.End.After(window.End) {
				return
			}

			for first < len(busy) && !busy[first].End.After(start) {
				first++
			}

			if isFree(candidate, busy[first:]) {
				if !yield(domain.Slot{Start: candidate.Start, End: candidate.End, Available: true}) {
					return
				}
			}
		}
	}
}

// isFree true, если candidate не пересекается ни с одним интервалом. busy отсортирован по началу.
func isFree(candidate domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if !b.Start.Before(candidate.End) {
			return true
		}
		if candidate.Overlaps(b) {
			return false
		}
	}
	return true
}
