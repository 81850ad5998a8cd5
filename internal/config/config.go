package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	// ErrLoad ошибка чтения конфигурации
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid конфигурация не прошла валидацию
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Redis      RedisConfig      `toml:"redis"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Catalog    CatalogConfig    `toml:"catalog"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
}

// ServerConfig HTTP сервер; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=1"`
}

// DatabaseConfig PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"` // секунды
	TxRetries       int    `toml:"tx_retries" validate:"min=0,max=10"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig распределенная блокировка по барберу. Если выключено, используется блокировка внутри процесса.
type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr" validate:"required_if=Enabled true"`
	Password    string `toml:"password"`
	DB          int    `toml:"db" validate:"min=0"`
	LockTTL     int    `toml:"lock_ttl" validate:"min=1"`        // секунды
	LockWait    int    `toml:"lock_wait_ms" validate:"min=0"`    // сколько ждать захвата блокировки; 0 - до отмены запроса
	LockBackoff int    `toml:"lock_backoff_ms" validate:"min=1"` // пауза между попытками захвата
	KeyPrefix   string `toml:"key_prefix" validate:"required"`
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// MetricsConfig метрики Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" validate:"required"`
}

// SchedulingConfig параметры расписания
type SchedulingConfig struct {
	// Timezone зона салона, в которой считаются дни и рабочие часы
	Timezone string `toml:"timezone" validate:"required,ne=Local"`
	// ClipToWorkingHours не выдавать слоты, которые заканчиваются после закрытия
	ClipToWorkingHours bool `toml:"clip_to_working_hours"`
}

// Location загружает зону салона
func (c SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// CatalogConfig кэш каталога барберов и услуг; секунды
type CatalogConfig struct {
	CacheTTL        int `toml:"cache_ttl" validate:"min=0"`
	CleanupInterval int `toml:"cleanup_interval" validate:"min=1"`
}

// RateLimitConfig ограничение частоты запросов
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"required_if=Enabled true,gte=0"`
	Burst             int     `toml:"burst" validate:"required_if=Enabled true,gte=0"`
}

// Load читает TOML-файл, подмешивает .env и переменные окружения BARBER_* и валидирует результат
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoad, path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "barbershop",
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxRetries:       3,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			LockTTL:     10,
			LockWait:    3000,
			LockBackoff: 25,
			KeyPrefix:   "barber-scheduler",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "barber_scheduler",
		},
		Scheduling: SchedulingConfig{
			Timezone: "America/Sao_Paulo",
		},
		Catalog: CatalogConfig{
			CacheTTL:        60,
			CleanupInterval: 300,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
		},
	}
}

// Validate проверяет конфигурацию по тегам validate
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalid, err)
	}
	return nil
}

// applyEnv переопределяет секреты и адреса из окружения
func applyEnv(cfg *Config) error {
	setString(&cfg.Database.Host, "BARBER_DB_HOST")
	setString(&cfg.Database.User, "BARBER_DB_USER")
	setString(&cfg.Database.Password, "BARBER_DB_PASSWORD")
	setString(&cfg.Database.DBName, "BARBER_DB_NAME")
	setString(&cfg.Redis.Addr, "BARBER_REDIS_ADDR")
	setString(&cfg.Redis.Password, "BARBER_REDIS_PASSWORD")
	setString(&cfg.Logs.Level, "BARBER_LOG_LEVEL")
	setString(&cfg.Scheduling.Timezone, "BARBER_TIMEZONE")

	if err := setInt(&cfg.Database.Port, "BARBER_DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Server.HTTPPort, "BARBER_HTTP_PORT"); err != nil {
		return err
	}
	if err := setBool(&cfg.Redis.Enabled, "BARBER_REDIS_ENABLED"); err != nil {
		return err
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %v", key, err)
	}
	*dst = b
	return nil
}
