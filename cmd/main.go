package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/check_availability"
	completeAppointmentHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_appointment"
	getAppointmentStatsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_appointment_stats"
	getAppointmentsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_appointments"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_client_appointments"
	getDailyScheduleHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_daily_schedule"
	getPastAppointmentsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_past_appointments"
	getUpcomingAppointmentsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/get_upcoming_appointments"
	healthHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/health"
	listBarbersHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/list_barbers"
	listServicesHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/list_services"
	searchAppointmentsHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/search_appointments"
	updateAppointmentHandler "github.com/m04kA/SMC-BarberScheduler/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-BarberScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-BarberScheduler/internal/config"
	"github.com/m04kA/SMC-BarberScheduler/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/catalog"
	appointmentsService "github.com/m04kA/SMC-BarberScheduler/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-BarberScheduler/internal/service/catalog"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/conflicts"
	statsService "github.com/m04kA/SMC-BarberScheduler/internal/service/stats"
	createAppointmentUC "github.com/m04kA/SMC-BarberScheduler/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberScheduler/internal/usecase/get_available_slots"
	transitionAppointmentUC "github.com/m04kA/SMC-BarberScheduler/internal/usecase/transition_appointment"
	updateAppointmentUC "github.com/m04kA/SMC-BarberScheduler/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/logger"
	"github.com/m04kA/SMC-BarberScheduler/pkg/metrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("BARBER_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BarberScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Scheduling.Timezone, err)
	}

	// Инициализируем метрики (если включены). nil *metrics.Metrics безопасно передавать дальше.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, metricsCollector).WithRetries(cfg.Database.TxRetries)

	// Блокировка расписания барбера: Redis для нескольких экземпляров, иначе внутри процесса
	var barberLocker lock.Locker
	var redisPinger healthHandler.Pinger
	lockWait := time.Duration(cfg.Redis.LockWait) * time.Millisecond
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis addr=%s: %v", cfg.Redis.Addr, err)
		}

		redisPinger = healthHandler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		barberLocker = lock.NewRedisLocker(redisClient, lock.RedisOptions{
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       time.Duration(cfg.Redis.LockTTL) * time.Second,
			Wait:      lockWait,
			Backoff:   time.Duration(cfg.Redis.LockBackoff) * time.Millisecond,
		}, metricsCollector)
		log.Info("Barber locks backed by redis addr=%s", cfg.Redis.Addr)
	} else {
		barberLocker = lock.NewLocalLocker(lockWait, metricsCollector)
		log.Warn("Redis disabled: barber locks are process-local, run a single instance")
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB, location)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		catalogRepository,
		time.Duration(cfg.Catalog.CacheTTL)*time.Second,
		time.Duration(cfg.Catalog.CleanupInterval)*time.Second,
		log,
	)
	detector := conflicts.NewDetector(appointmentRepository)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, detector, catalogSvc, location, log)
	statsSvc := statsService.NewService(appointmentRepository, txMgr, location, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogSvc,
		detector,
		barberLocker,
		txMgr,
		metricsCollector,
		location,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogSvc,
		detector,
		barberLocker,
		txMgr,
		metricsCollector,
		location,
		log,
	)
	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(
		appointmentRepository,
		barberLocker,
		txMgr,
		metricsCollector,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		location,
		cfg.Scheduling.ClipToWorkingHours,
		log,
	)

	// Инициализируем handlers
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, location, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	searchAppointments := searchAppointmentsHandler.NewHandler(appointmentsSvc, location, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointmentStats := getAppointmentStatsHandler.NewHandler(statsSvc, location, log)
	getUpcomingAppointments := getUpcomingAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getPastAppointments := getPastAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	completeAppointment := completeAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(appointmentsSvc, location, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	getDailySchedule := getDailyScheduleHandler.NewHandler(appointmentsSvc, location, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	listBarbers := listBarbersHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	health := healthHandler.NewHandler(wrappedDB, log)
	if redisPinger != nil {
		health.WithRedis(redisPinger)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log))
		log.Info("Rate limit enabled: rps=%.1f burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// --- Каталог ---
	api.HandleFunc("/barbers", listBarbers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbers/{barberId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbers/{barberId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	// Статические пути регистрируются раньше /appointments/{id}
	api.HandleFunc("/appointments/search", searchAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/stats", getAppointmentStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/upcoming", getUpcomingAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/past", getPastAppointments.Handle).Methods(http.MethodGet)

	api.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{id}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// --- Расписание и клиенты ---
	api.HandleFunc("/schedule/daily", getDailySchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{phone}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
