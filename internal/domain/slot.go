package domain

import "time"

// Slot вычисляемый интервал [Start, End) для записи, в БД не хранится
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// Interval интервал слота
func (s Slot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}
