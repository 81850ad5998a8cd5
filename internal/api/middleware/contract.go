package middleware

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPObserver получает длительность и статус запроса (*metrics.Metrics)
type HTTPObserver interface {
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
}
