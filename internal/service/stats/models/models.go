package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
)

// DayCount количество записей за календарный день
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatsResponse статистика записей за период
type StatsResponse struct {
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	TotalCount   int             `json:"totalCount"`
	ByStatus     map[string]int  `json:"byStatus"`
	ByBarber     map[string]int  `json:"byBarber"`
	ByService    map[string]int  `json:"byService"`
	ByDay        []DayCount      `json:"byDay"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// FromDomain конвертирует доменную статистику в response
func FromDomain(s *domain.AppointmentStats, startDate, endDate string) *StatsResponse {
	byDay := make([]DayCount, 0, len(s.ByDay))
	for _, g := range s.ByDay {
		byDay = append(byDay, DayCount{Date: g.Key, Count: g.Count})
	}

	return &StatsResponse{
		StartDate:    startDate,
		EndDate:      endDate,
		TotalCount:   s.TotalCount,
		ByStatus:     toMap(s.ByStatus),
		ByBarber:     toMap(s.ByBarber),
		ByService:    toMap(s.ByService),
		ByDay:        byDay,
		TotalRevenue: s.TotalRevenue,
	}
}

func toMap(groups []domain.GroupCount) map[string]int {
	m := make(map[string]int, len(groups))
	for _, g := range groups {
		m[g.Key] = g.Count
	}
	return m
}
