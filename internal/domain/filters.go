package domain

import "time"

// DateRange полуинтервал дат [From, To)
type DateRange struct {
	From time.Time
	To   time.Time
}

// DayRange диапазон одного календарного дня в зоне loc
func DayRange(day time.Time, loc *time.Location) DateRange {
	start := StartOfDay(day, loc)
	return DateRange{From: start, To: start.AddDate(0, 0, 1)}
}

// InclusiveDaysRange диапазон календарных дней [from, to] включительно
func InclusiveDaysRange(from, to time.Time, loc *time.Location) DateRange {
	return DateRange{
		From: StartOfDay(from, loc),
		To:   StartOfDay(to, loc).AddDate(0, 0, 1),
	}
}

// StartOfDay полночь дня t в зоне loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SearchFilter фильтр поиска записей. Пустые поля не участвуют в фильтрации.
type SearchFilter struct {
	ClientName  string     // Подстрока имени, без учета регистра
	ClientPhone string     // Подстрока телефона
	From        *time.Time // Начало периода, включительно
	To          *time.Time // Конец периода, не включая
	Status      *AppointmentStatus
	Limit       int
}

// GroupKey поле группировки статистики
type GroupKey string

const (
	GroupByStatus  GroupKey = "status"
	GroupByBarber  GroupKey = "barber"
	GroupByService GroupKey = "service"
	GroupByDay     GroupKey = "day"
)
