package update_appointment

import "github.com/shopspring/decimal"

// Request частичное обновление записи. nil означает "поле не меняется".
type Request struct {
	ID              string
	ClientName      *string
	ClientPhone     *string
	Date            *string // RFC3339 или YYYY-MM-DDTHH:MM в зоне салона
	DurationMinutes *int
	BarberID        *string
	ServiceID       *string
	Price           *decimal.Decimal
	Status          *string
	Notes           *string
}
