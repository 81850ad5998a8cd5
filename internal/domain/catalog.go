package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// Barber барбер. Ядро записи его не изменяет.
type Barber struct {
	ID        objectid.ID
	Name      string
	Specialty string
	Available bool
	Email     string
	Phone     string
	Rating    float64
	Services  []string // Названия услуг, которые оказывает барбер
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service услуга каталога. Ядро записи ее не изменяет.
type Service struct {
	ID              objectid.ID
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
	Category        string
	Description     string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
