package domain

import "github.com/shopspring/decimal"

// GroupCount количество записей в группе
type GroupCount struct {
	Key   string
	Count int
}

// AppointmentStats сводка по неотмененным записям за период
type AppointmentStats struct {
	TotalCount   int
	ByStatus     []GroupCount
	ByBarber     []GroupCount
	ByService    []GroupCount
	ByDay        []GroupCount // Ключ YYYY-MM-DD, по возрастанию
	TotalRevenue decimal.Decimal
}

// BarberSchedule расписание барбера на день
type BarberSchedule struct {
	Barber       *Barber
	Appointments []*Appointment
}
