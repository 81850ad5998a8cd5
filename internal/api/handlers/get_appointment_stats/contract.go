package get_appointment_stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/service/stats/models"
)

type StatsService interface {
	GetStats(ctx context.Context, startDate, endDate time.Time) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
