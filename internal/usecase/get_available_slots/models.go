package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	BarberID        objectid.ID // ID барбера
	Date            time.Time   // День, время суток не учитывается
	DurationMinutes int         // Длительность услуги, 0 означает значение по умолчанию
}
