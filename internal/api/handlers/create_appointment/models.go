package create_appointment

import (
	"github.com/shopspring/decimal"

	createAppointment "github.com/m04kA/SMC-BarberScheduler/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName  string           `json:"clientName"`
	ClientPhone string           `json:"clientPhone"`
	Date        string           `json:"date"`
	Duration    *int             `json:"duration,omitempty"`
	BarberID    string           `json:"barberId"`
	ServiceID   string           `json:"serviceId"`
	BarberName  string           `json:"barberName,omitempty"`
	ServiceName string           `json:"serviceName,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		Date:            r.Date,
		DurationMinutes: r.Duration,
		BarberID:        r.BarberID,
		ServiceID:       r.ServiceID,
		BarberName:      r.BarberName,
		ServiceName:     r.ServiceName,
		Price:           r.Price,
		Notes:           r.Notes,
	}
}
