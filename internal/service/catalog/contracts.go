package catalog

import (
	"context"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	ListAvailableBarbers(ctx context.Context) ([]*domain.Barber, error)
	ListActiveServices(ctx context.Context) ([]*domain.Service, error)
	GetBarber(ctx context.Context, id objectid.ID) (*domain.Barber, error)
	GetService(ctx context.Context, id objectid.ID) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
