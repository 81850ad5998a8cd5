package update_appointment

import (
	"github.com/shopspring/decimal"

	updateAppointment "github.com/m04kA/SMC-BarberScheduler/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateAppointmentRequest struct {
	ClientName  *string          `json:"clientName,omitempty"`
	ClientPhone *string          `json:"clientPhone,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Duration    *int             `json:"duration,omitempty"`
	BarberID    *string          `json:"barberId,omitempty"`
	ServiceID   *string          `json:"serviceId,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id string) *updateAppointment.Request {
	return &updateAppointment.Request{
		ID:              id,
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		Date:            r.Date,
		DurationMinutes: r.Duration,
		BarberID:        r.BarberID,
		ServiceID:       r.ServiceID,
		Price:           r.Price,
		Status:          r.Status,
		Notes:           r.Notes,
	}
}
