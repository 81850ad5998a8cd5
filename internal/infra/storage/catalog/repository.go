package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/psqlbuilder"
)

var barberColumns = []string{
	"id",
	"name",
	"specialty",
	"available",
	"email",
	"phone",
	"rating",
	"services",
	"created_at",
	"updated_at",
}

var serviceColumns = []string{
	"id",
	"name",
	"duration_minutes",
	"price",
	"category",
	"description",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога: барберы и услуги.
// Ядро записи каталог только читает, вставка используется командой заполнения тестовыми данными.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAvailableBarbers получает доступных барберов, упорядоченных по имени
func (r *Repository) ListAvailableBarbers(ctx context.Context) ([]*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(barberColumns...).
		From("barbers").
		Where(squirrel.Eq{"available": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableBarbers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableBarbers - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		barber, err := scanBarber(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailableBarbers - scan row: %v", ErrScanRow, err)
		}
		barbers = append(barbers, barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableBarbers - rows error: %w", ErrScanRow, err)
	}

	return barbers, nil
}

// ListActiveServices получает активные услуги, упорядоченные по названию
func (r *Repository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

// GetBarber получает барбера по ID независимо от доступности
func (r *Repository) GetBarber(ctx context.Context, id objectid.ID) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(barberColumns...).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBarber - build select query: %v", ErrBuildQuery, err)
	}

	barber, err := scanBarber(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarber - scan barber: %w", ErrScanRow, err)
	}

	return barber, nil
}

// GetService получает услугу по ID независимо от активности
func (r *Repository) GetService(ctx context.Context, id objectid.ID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return service, nil
}

// CountBarbers количество барберов в каталоге. Используется, чтобы не заполнять каталог повторно.
func (r *Repository) CountBarbers(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("barbers").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBarbers - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBarbers - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// InsertBarber добавляет барбера и присваивает ему ID
func (r *Repository) InsertBarber(ctx context.Context, barber *domain.Barber) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	barber.ID = objectid.New()

	services := barber.Services
	if services == nil {
		services = []string{}
	}

	query, args, err := psqlbuilder.Insert("barbers").
		Columns(
			"id",
			"name",
			"specialty",
			"available",
			"email",
			"phone",
			"rating",
			"services",
		).
		Values(
			barber.ID,
			barber.Name,
			barber.Specialty,
			barber.Available,
			barber.Email,
			barber.Phone,
			barber.Rating,
			pq.Array(services),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: InsertBarber - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&barber.CreatedAt, &barber.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: InsertBarber - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// InsertService добавляет услугу и присваивает ей ID
func (r *Repository) InsertService(ctx context.Context, service *domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	service.ID = objectid.New()

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"id",
			"name",
			"duration_minutes",
			"price",
			"category",
			"description",
			"active",
		).
		Values(
			service.ID,
			service.Name,
			service.DurationMinutes,
			service.Price,
			service.Category,
			service.Description,
			service.Active,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: InsertService - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: InsertService - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBarber(row rowScanner) (*domain.Barber, error) {
	var barber domain.Barber
	var services pq.StringArray

	err := row.Scan(
		&barber.ID,
		&barber.Name,
		&barber.Specialty,
		&barber.Available,
		&barber.Email,
		&barber.Phone,
		&barber.Rating,
		&services,
		&barber.CreatedAt,
		&barber.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	barber.Services = []string(services)
	return &barber, nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service

	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Category,
		&service.Description,
		&service.Active,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &service, nil
}
