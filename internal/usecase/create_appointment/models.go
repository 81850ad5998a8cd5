package create_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// Request модель запроса на создание записи. Поля приходят как есть и проверяются в usecase.
type Request struct {
	ClientName      string
	ClientPhone     string
	Date            string // RFC3339 или YYYY-MM-DDTHH:MM в зоне салона
	DurationMinutes *int   // По умолчанию 30
	BarberID        string
	ServiceID       string
	BarberName      string // Если пусто, берется из каталога
	ServiceName     string // Если пусто, берется из каталога
	Price           *decimal.Decimal
	Notes           string
}

// validRequest запрос после проверки и нормализации
type validRequest struct {
	clientName      string
	clientPhone     string
	start           time.Time
	durationMinutes int
	barberID        objectid.ID
	serviceID       objectid.ID
	barberName      string
	serviceName     string
	price           decimal.Decimal
	notes           string
}
