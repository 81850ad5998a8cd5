package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// BarberResponse барбер в ответе API
type BarberResponse struct {
	ID        objectid.ID `json:"id"`
	Name      string      `json:"name"`
	Specialty string      `json:"specialty"`
	Available bool        `json:"available"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Rating    float64     `json:"rating"`
	Services  []string    `json:"services"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ServiceResponse услуга в ответе API
type ServiceResponse struct {
	ID              objectid.ID     `json:"id"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"duration"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// FromDomainBarber конвертирует доменную модель барбера в response
func FromDomainBarber(b *domain.Barber) *BarberResponse {
	services := b.Services
	if services == nil {
		services = []string{}
	}

	return &BarberResponse{
		ID:        b.ID,
		Name:      b.Name,
		Specialty: b.Specialty,
		Available: b.Available,
		Email:     b.Email,
		Phone:     b.Phone,
		Rating:    b.Rating,
		Services:  services,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainService конвертирует доменную модель услуги в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Category:        s.Category,
		Description:     s.Description,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
