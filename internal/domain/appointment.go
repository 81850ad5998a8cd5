package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid проверяет, что статус известен
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal true для статусов, из которых нет переходов
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo разрешенные переходы: scheduled -> completed, scheduled -> cancelled
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	return s == StatusScheduled && (to == StatusCompleted || to == StatusCancelled)
}

// Appointment запись клиента к барберу
type Appointment struct {
	ID              objectid.ID
	ClientName      string
	ClientPhone     string
	Date            time.Time // Начало записи
	DurationMinutes int
	BarberID        objectid.ID
	ServiceID       objectid.ID

	// Снимок данных каталога на момент создания (или переназначения барбера/услуги).
	// Последующие изменения каталога на запись не влияют.
	BarberName  string
	ServiceName string
	Price       decimal.Decimal

	Status AppointmentStatus
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval интервал, который занимает запись
func (a *Appointment) Interval() Interval {
	return NewInterval(a.Date, a.DurationMinutes)
}

// End время окончания записи
func (a *Appointment) End() time.Time {
	return a.Interval().End
}

// IsActive true для записей, которые занимают время барбера (все, кроме отмененных)
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled true, если запись можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status.CanTransitionTo(StatusCancelled)
}

// CanBeCompleted true, если запись можно завершить
func (a *Appointment) CanBeCompleted() bool {
	return a.Status.CanTransitionTo(StatusCompleted)
}

// AppointmentChanges частичное обновление записи. nil означает "поле не меняется".
type AppointmentChanges struct {
	ClientName      *string
	ClientPhone     *string
	Date            *time.Time
	DurationMinutes *int
	BarberID        *objectid.ID
	ServiceID       *objectid.ID
	BarberName      *string
	ServiceName     *string
	Price           *decimal.Decimal
	Status          *AppointmentStatus
	Notes           *string
}

// IsEmpty true, если ни одно поле не задано
func (c AppointmentChanges) IsEmpty() bool {
	return c.ClientName == nil &&
		c.ClientPhone == nil &&
		c.Date == nil &&
		c.DurationMinutes == nil &&
		c.BarberID == nil &&
		c.ServiceID == nil &&
		c.BarberName == nil &&
		c.ServiceName == nil &&
		c.Price == nil &&
		c.Status == nil &&
		c.Notes == nil
}

// TouchesSchedule true, если изменение может привести к пересечению с другими записями
func (c AppointmentChanges) TouchesSchedule() bool {
	return c.Date != nil || c.BarberID != nil || c.DurationMinutes != nil
}

// Diff оставляет только поля, которые отличаются от текущего состояния записи
func (c AppointmentChanges) Diff(current *Appointment) AppointmentChanges {
	var d AppointmentChanges

	if c.ClientName != nil && *c.ClientName != current.ClientName {
		d.ClientName = c.ClientName
	}
	if c.ClientPhone != nil && *c.ClientPhone != current.ClientPhone {
		d.ClientPhone = c.ClientPhone
	}
	if c.Date != nil && !c.Date.Equal(current.Date) {
		d.Date = c.Date
	}
	if c.DurationMinutes != nil && *c.DurationMinutes != current.DurationMinutes {
		d.DurationMinutes = c.DurationMinutes
	}
	if c.BarberID != nil && *c.BarberID != current.BarberID {
		d.BarberID = c.BarberID
	}
	if c.ServiceID != nil && *c.ServiceID != current.ServiceID {
		d.ServiceID = c.ServiceID
	}
	if c.BarberName != nil && *c.BarberName != current.BarberName {
		d.BarberName = c.BarberName
	}
	if c.ServiceName != nil && *c.ServiceName != current.ServiceName {
		d.ServiceName = c.ServiceName
	}
	if c.Price != nil && !c.Price.Equal(current.Price) {
		d.Price = c.Price
	}
	if c.Status != nil && *c.Status != current.Status {
		d.Status = c.Status
	}
	if c.Notes != nil && *c.Notes != current.Notes {
		d.Notes = c.Notes
	}

	return d
}

// Apply возвращает копию записи с примененными изменениями
func (c AppointmentChanges) Apply(current *Appointment) *Appointment {
	merged := *current

	if c.ClientName != nil {
		merged.ClientName = *c.ClientName
	}
	if c.ClientPhone != nil {
		merged.ClientPhone = *c.ClientPhone
	}
	if c.Date != nil {
		merged.Date = *c.Date
	}
	if c.DurationMinutes != nil {
		merged.DurationMinutes = *c.DurationMinutes
	}
	if c.BarberID != nil {
		merged.BarberID = *c.BarberID
	}
	if c.ServiceID != nil {
		merged.ServiceID = *c.ServiceID
	}
	if c.BarberName != nil {
		merged.BarberName = *c.BarberName
	}
	if c.ServiceName != nil {
		merged.ServiceName = *c.ServiceName
	}
	if c.Price != nil {
		merged.Price = *c.Price
	}
	if c.Status != nil {
		merged.Status = *c.Status
	}
	if c.Notes != nil {
		merged.Notes = *c.Notes
	}

	return &merged
}
