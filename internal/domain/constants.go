package domain

import "time"

// Рабочий день и сетка слотов
const (
	WorkdayStartHour = 8  // 08:00
	WorkdayEndHour   = 20 // 20:00, слоты не начинаются в это время и позже
	SlotStep         = 15 * time.Minute
)

// Значения по умолчанию
const (
	DefaultDurationMinutes  = 30
	DefaultUpcomingLimit    = 10
	DefaultClientLimit      = 20
	DefaultPastLimit        = 20
	SearchLimit             = 50
	MaxListLimit            = 200
	MaxDurationMinutes      = 12 * 60
	MaxNotesLength          = 1000
	MaxClientNameLength     = 200
	DefaultCancellationNote = "Cancelled by client"
	DefaultCompletionNote   = "Service completed"
)

// Форматы даты и времени
const (
	DateFormat          = "2006-01-02"       // YYYY-MM-DD
	LocalDateTimeFormat = "2006-01-02T15:04" // время без зоны, трактуется в локальной зоне салона
)
