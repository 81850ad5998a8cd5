package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/internal/config"
	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BarberScheduler/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberScheduler/internal/service/conflicts"
	createAppointmentUC "github.com/m04kA/SMC-BarberScheduler/internal/usecase/create_appointment"
	transitionAppointmentUC "github.com/m04kA/SMC-BarberScheduler/internal/usecase/transition_appointment"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/logger"
	"github.com/m04kA/SMC-BarberScheduler/pkg/metrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
)

var barbers = []domain.Barber{
	{Name: "João Silva", Specialty: "Cortes clássicos", Available: true, Email: "joao@barbearia.com", Phone: "(11) 99999-1111", Rating: 4.8,
		Services: []string{"Corte de Cabelo", "Barba", "Corte + Barba"}},
	{Name: "Pedro Santos", Specialty: "Cortes modernos", Available: true, Email: "pedro@barbearia.com", Phone: "(11) 99999-2222", Rating: 4.9,
		Services: []string{"Corte de Cabelo", "Hidratação", "Pezinho"}},
	{Name: "Carlos Mendes", Specialty: "Barba e bigode", Available: true, Email: "carlos@barbearia.com", Phone: "(11) 99999-3333", Rating: 4.7,
		Services: []string{"Barba", "Corte + Barba", "Pezinho"}},
	{Name: "Marcos Oliveira", Specialty: "Tratamentos capilares", Available: true, Email: "marcos@barbearia.com", Phone: "(11) 99999-4444", Rating: 4.6,
		Services: []string{"Corte de Cabelo", "Hidratação"}},
}

var services = []domain.Service{
	{Name: "Corte de Cabelo", DurationMinutes: 30, Price: decimal.NewFromInt(35), Category: "corte", Description: "Corte tradicional", Active: true},
	{Name: "Barba", DurationMinutes: 25, Price: decimal.NewFromInt(25), Category: "barba", Description: "Barba com toalha quente", Active: true},
	{Name: "Corte + Barba", DurationMinutes: 50, Price: decimal.NewFromInt(55), Category: "combo", Description: "Corte e barba", Active: true},
	{Name: "Hidratação", DurationMinutes: 20, Price: decimal.NewFromInt(30), Category: "tratamento", Description: "Hidratação capilar", Active: true},
	{Name: "Pezinho", DurationMinutes: 15, Price: decimal.NewFromInt(15), Category: "acabamento", Description: "Acabamento do contorno", Active: true},
}

func main() {
	configPath := flag.String("config", "config.toml", "путь к конфигурации")
	migration := flag.String("migrate", "", "SQL миграция, применяемая перед заполнением")
	count := flag.Int("appointments", 60, "сколько записей попытаться создать")
	days := flag.Int("days", 7, "записи создаются в диапазоне [-days, +days] от сегодня")
	seed := flag.Uint64("seed", 0, "seed генератора (0 - текущее время)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Seed: failed to load timezone %s: %v", cfg.Scheduling.Timezone, err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Seed: failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Seed: failed to ping database: %v", err)
	}

	if *migration != "" {
		if err := applyMigration(ctx, db, *migration); err != nil {
			log.Fatal("Seed: %v", err)
		}
		log.Info("Seed: migration %s applied", *migration)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	faker := gofakeit.New(*seed)

	wrappedDB := dbmetrics.Wrap(db, nil)
	txMgr := txmanager.NewTransactionManager(wrappedDB, nil).WithRetries(cfg.Database.TxRetries)
	catalog := catalogRepo.NewRepository(wrappedDB)
	appointments := appointmentRepo.NewRepository(wrappedDB, location)

	existing, err := catalog.CountBarbers(ctx)
	if err != nil {
		log.Fatal("Seed: failed to count barbers: %v", err)
	}
	if existing > 0 {
		log.Info("Seed: catalog already has %d barbers, nothing to do", existing)
		return
	}

	if err := seedCatalog(ctx, txMgr, catalog); err != nil {
		log.Fatal("Seed: %v", err)
	}
	log.Info("Seed: inserted %d barbers and %d services", len(barbers), len(services))

	// Метрики в seed не собираются; nil *metrics.Metrics безопасен
	var noMetrics *metrics.Metrics
	locker := lock.NewLocalLocker(time.Second, nil)
	create := createAppointmentUC.NewUseCase(appointments, &catalogLookup{barbers: barbers, services: services},
		conflicts.NewDetector(appointments), locker, txMgr, noMetrics, location, log)
	transition := transitionAppointmentUC.NewUseCase(appointments, locker, txMgr, noMetrics, location, log)

	created, skipped := seedAppointments(ctx, faker, create, transition, location, *count, *days, log)
	log.Info("Seed: created %d appointments, skipped %d conflicting candidates", created, skipped)
}

func applyMigration(ctx context.Context, db *sql.DB, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, string(script)); err != nil {
		return fmt.Errorf("apply migration %s: %w", path, err)
	}
	return nil
}

// seedCatalog вставляет барберов и услуги одной транзакцией; ID присваиваются в barbers/services
func seedCatalog(ctx context.Context, txMgr *txmanager.TransactionManager, repo *catalogRepo.Repository) error {
	return txMgr.Do(ctx, func(txCtx context.Context) error {
		for i := range barbers {
			if err := repo.InsertBarber(txCtx, &barbers[i]); err != nil {
				return fmt.Errorf("insert barber %s: %w", barbers[i].Name, err)
			}
		}
		for i := range services {
			if err := repo.InsertService(txCtx, &services[i]); err != nil {
				return fmt.Errorf("insert service %s: %w", services[i].Name, err)
			}
		}
		return nil
	})
}

// seedAppointments создает случайные записи. Пересекающиеся кандидаты отклоняются usecase и пропускаются,
// прошедшие записи частично завершаются или отменяются.
func seedAppointments(
	ctx context.Context,
	faker *gofakeit.Faker,
	create *createAppointmentUC.UseCase,
	transition *transitionAppointmentUC.UseCase,
	location *time.Location,
	count, days int,
	log *logger.Logger,
) (created, skipped int) {
	today := domain.StartOfDay(time.Now(), location)

	for i := 0; i < count; i++ {
		barber := barbers[faker.Number(0, len(barbers)-1)]
		service := services[faker.Number(0, len(services)-1)]

		day := today.AddDate(0, 0, faker.Number(-days, days))
		// 08:00-19:45 с шагом в 15 минут
		start := day.Add(time.Duration(8*60+15*faker.Number(0, 47)) * time.Minute)

		req := &createAppointmentUC.Request{
			ClientName:      faker.Name(),
			ClientPhone:     faker.Phone(),
			Date:            start.Format(domain.LocalDateTimeFormat),
			DurationMinutes: &service.DurationMinutes,
			BarberID:        barber.ID.Hex(),
			ServiceID:       service.ID.Hex(),
			Price:           &service.Price,
		}
		if faker.Bool() {
			req.Notes = faker.Phrase()
		}

		resp, err := create.Execute(ctx, req)
		if err != nil {
			if !errors.Is(err, domain.ErrConflict) {
				log.Warn("Seed: failed to create appointment barber=%s at %s: %v", barber.Name, req.Date, err)
			}
			skipped++
			continue
		}
		created++

		if !start.Before(today) {
			continue
		}
		if faker.Number(0, 3) == 0 {
			_, err = transition.Cancel(ctx, resp.ID.Hex(), "")
		} else {
			_, err = transition.Complete(ctx, resp.ID.Hex(), "")
		}
		if err != nil {
			log.Warn("Seed: failed to close appointment id=%s: %v", resp.ID, err)
		}
	}

	return created, skipped
}

// catalogLookup каталог в памяти после вставки, без кэша сервиса
type catalogLookup struct {
	barbers  []domain.Barber
	services []domain.Service
}

func (c *catalogLookup) GetBarber(_ context.Context, id objectid.ID) (*domain.Barber, error) {
	for i := range c.barbers {
		if c.barbers[i].ID == id {
			return &c.barbers[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (c *catalogLookup) GetService(_ context.Context, id objectid.ID) (*domain.Service, error) {
	for i := range c.services {
		if c.services[i].ID == id {
			return &c.services[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
