package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// Request модели

// SearchRequest фильтры поиска записей. Пустые поля не участвуют в фильтрации.
type SearchRequest struct {
	ClientName  string
	ClientPhone string
	StartDate   *time.Time // Первый день периода
	EndDate     *time.Time // Последний день периода, включительно
	Status      *string
}

// GetByDateRequest запрос записей за день
type GetByDateRequest struct {
	Date     time.Time
	BarberID *objectid.ID
}

// Response модели

// AppointmentResponse запись в ответе API
type AppointmentResponse struct {
	ID              objectid.ID     `json:"id"`
	ClientName      string          `json:"clientName"`
	ClientPhone     string          `json:"clientPhone"`
	Date            time.Time       `json:"date"`
	EndDate         time.Time       `json:"endDate"`
	DurationMinutes int             `json:"duration"`
	BarberID        objectid.ID     `json:"barberId"`
	ServiceID       objectid.ID     `json:"serviceId"`
	BarberName      string          `json:"barberName"`
	ServiceName     string          `json:"serviceName"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Count        int                    `json:"count"`
}

// AvailabilityResponse результат проверки доступности
type AvailabilityResponse struct {
	BarberID        objectid.ID `json:"barberId"`
	Start           time.Time   `json:"start"`
	End             time.Time   `json:"end"`
	DurationMinutes int         `json:"duration"`
	Available       bool        `json:"available"`
}

// BarberScheduleResponse записи одного барбера за день
type BarberScheduleResponse struct {
	Barber       *models.BarberResponse `json:"barber"`
	Appointments []*AppointmentResponse `json:"appointments"`
}

// DailyScheduleResponse расписание салона на день
type DailyScheduleResponse struct {
	Date      string                    `json:"date"`
	Schedules []*BarberScheduleResponse `json:"schedules"`
}

// Методы конвертации

// FromDomain конвертирует domain модель в DTO. Время приводится к зоне loc.
func FromDomain(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		ClientName:      a.ClientName,
		ClientPhone:     a.ClientPhone,
		Date:            a.Date.In(loc),
		EndDate:         a.End().In(loc),
		DurationMinutes: a.DurationMinutes,
		BarberID:        a.BarberID,
		ServiceID:       a.ServiceID,
		BarberName:      a.BarberName,
		ServiceName:     a.ServiceName,
		Price:           a.Price,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt.In(loc),
		UpdatedAt:       a.UpdatedAt.In(loc),
	}
}

// FromDomainList конвертирует список записей
func FromDomainList(list []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	result := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomain(a, loc))
	}

	return &AppointmentListResponse{
		Appointments: result,
		Count:        len(result),
	}
}

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", domain.NewValidationError("status must be one of scheduled, completed, cancelled")
	}
	return status, nil
}
