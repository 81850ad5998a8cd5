package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/psqlbuilder"
)

const (
	table = "appointments"

	// codeExclusionViolation нарушение EXCLUDE ограничения appointments_no_overlap
	codeExclusionViolation = "23P01"
)

var columns = []string{
	"id",
	"client_name",
	"client_phone",
	"start_at",
	"duration_minutes",
	"barber_id",
	"service_id",
	"barber_name",
	"service_name",
	"price",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
	// tz имя зоны, в которой считается календарный день при группировке статистики
	tz string
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	tz := "UTC"
	if loc != nil {
		tz = loc.String()
	}
	return &Repository{db: db, tz: tz}
}

// Insert сохраняет проверенную запись и возвращает присвоенный идентификатор.
// Валидацию не выполняет. Пересечение с другой активной записью барбера, пойманное ограничением БД,
// возвращается как ErrOverlap.
func (r *Repository) Insert(ctx context.Context, appointment *domain.Appointment) (objectid.ID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	id := objectid.New()

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"client_name",
			"client_phone",
			"start_at",
			"end_at",
			"duration_minutes",
			"barber_id",
			"service_id",
			"barber_name",
			"service_name",
			"price",
			"status",
			"notes",
			"created_at",
			"updated_at",
		).
		Values(
			id,
			appointment.ClientName,
			appointment.ClientPhone,
			appointment.Date,
			appointment.End(),
			appointment.DurationMinutes,
			appointment.BarberID,
			appointment.ServiceID,
			appointment.BarberName,
			appointment.ServiceName,
			appointment.Price,
			appointment.Status,
			appointment.Notes,
			appointment.CreatedAt,
			appointment.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return objectid.Nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		if isExclusionViolation(err) {
			return objectid.Nil, fmt.Errorf("%w: Insert - barber_id=%s start=%s", ErrOverlap,
				appointment.BarberID, appointment.Date.Format(time.RFC3339))
		}
		return objectid.Nil, fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	appointment.ID = id
	return id, nil
}

// FindByID получает запись по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до ее завершения.
func (r *Repository) FindByID(ctx context.Context, id objectid.ID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// FindByDateRange получает записи, начинающиеся в [rng.From, rng.To), по возрастанию начала.
// Если barberID задан, только записи этого барбера. Отмененные записи не исключаются.
func (r *Repository) FindByDateRange(ctx context.Context, rng domain.DateRange, barberID *objectid.ID) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"start_at": rng.From}).
		Where(squirrel.Lt{"start_at": rng.To}).
		OrderBy("start_at ASC")

	if barberID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": *barberID})
	}

	return r.query(ctx, "FindByDateRange", selectBuilder)
}

// FindByBarberAndWindow получает записи барбера, интервал которых пересекается с window.
// Используется детектором конфликтов и расчетом слотов. Внутри транзакции строки блокируются.
func (r *Repository) FindByBarberAndWindow(ctx context.Context, barberID objectid.ID, window domain.Interval) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"barber_id": barberID}).
		Where(squirrel.Lt{"start_at": window.End}).
		Where(squirrel.Gt{"end_at": window.Start}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "FindByBarberAndWindow", selectBuilder)
}

// FindByClient получает записи клиента по телефону, сначала новые
func (r *Repository) FindByClient(ctx context.Context, phone string, limit int) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_phone": phone}).
		OrderBy("start_at DESC").
		Limit(uint64(limit))

	return r.query(ctx, "FindByClient", selectBuilder)
}

// FindUpcoming получает ближайшие запланированные записи, начиная с now
func (r *Repository) FindUpcoming(ctx context.Context, now time.Time, limit int) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Where(squirrel.GtOrEq{"start_at": now}).
		OrderBy("start_at ASC").
		Limit(uint64(limit))

	return r.query(ctx, "FindUpcoming", selectBuilder)
}

// FindPast получает завершенные и отмененные записи до now, сначала новые
func (r *Repository) FindPast(ctx context.Context, now time.Time, limit int) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": []string{string(domain.StatusCompleted), string(domain.StatusCancelled)}}).
		Where(squirrel.Lt{"start_at": now}).
		OrderBy("start_at DESC").
		Limit(uint64(limit))

	return r.query(ctx, "FindPast", selectBuilder)
}

// Search ищет записи по подстроке имени и телефона клиента, периоду и статусу.
// Возвращает не более domain.SearchLimit записей, сначала новые.
func (r *Repository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Appointment, error) {
	limit := filter.Limit
	if limit <= 0 || limit > domain.SearchLimit {
		limit = domain.SearchLimit
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_at DESC").
		Limit(uint64(limit))

	if filter.ClientName != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"client_name": containsPattern(filter.ClientName)})
	}
	if filter.ClientPhone != "" {
		selectBuilder = selectBuilder.Where(squirrel.Like{"client_phone": containsPattern(filter.ClientPhone)})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	return r.query(ctx, "Search", selectBuilder)
}

// Update применяет изменения к записи и возвращает ее новое состояние.
// При изменении начала или длительности пересчитывается end_at.
func (r *Repository) Update(ctx context.Context, id objectid.ID, changes domain.AppointmentChanges, updatedAt time.Time) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if changes.ClientName != nil {
		updateBuilder = updateBuilder.Set("client_name", *changes.ClientName)
	}
	if changes.ClientPhone != nil {
		updateBuilder = updateBuilder.Set("client_phone", *changes.ClientPhone)
	}
	if changes.Date != nil {
		updateBuilder = updateBuilder.Set("start_at", *changes.Date)
	}
	if changes.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("duration_minutes", *changes.DurationMinutes)
	}
	if changes.Date != nil || changes.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("end_at", endAtExpr(changes))
	}
	if changes.BarberID != nil {
		updateBuilder = updateBuilder.Set("barber_id", *changes.BarberID)
	}
	if changes.ServiceID != nil {
		updateBuilder = updateBuilder.Set("service_id", *changes.ServiceID)
	}
	if changes.BarberName != nil {
		updateBuilder = updateBuilder.Set("barber_name", *changes.BarberName)
	}
	if changes.ServiceName != nil {
		updateBuilder = updateBuilder.Set("service_name", *changes.ServiceName)
	}
	if changes.Price != nil {
		updateBuilder = updateBuilder.Set("price", *changes.Price)
	}
	if changes.Status != nil {
		updateBuilder = updateBuilder.Set("status", *changes.Status)
	}
	if changes.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *changes.Notes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if isExclusionViolation(err) {
		return nil, fmt.Errorf("%w: Update - appointment_id=%s", ErrOverlap, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return appointment, nil
}

// Delete физически удаляет запись. Отмена записи выполняется через Update.
func (r *Repository) Delete(ctx context.Context, id objectid.ID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// CountBy считает неотмененные записи периода rng, сгруппированные по key.
// Для GroupByDay ключ YYYY-MM-DD в зоне репозитория, группы по возрастанию ключа.
func (r *Repository) CountBy(ctx context.Context, key domain.GroupKey, rng domain.DateRange) ([]domain.GroupCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var groupExpr string
	var groupArgs []interface{}
	switch key {
	case domain.GroupByStatus:
		groupExpr = "status"
	case domain.GroupByBarber:
		groupExpr = "barber_id"
	case domain.GroupByService:
		groupExpr = "service_id"
	case domain.GroupByDay:
		groupExpr = "to_char(start_at AT TIME ZONE ?, 'YYYY-MM-DD')"
		groupArgs = []interface{}{r.tz}
	default:
		return nil, fmt.Errorf("%w: CountBy - unknown group key %q", ErrBuildQuery, key)
	}

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Alias(squirrel.Expr(groupExpr, groupArgs...), "group_key")).
		Column("COUNT(*)").
		From(table).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.GtOrEq{"start_at": rng.From}).
		Where(squirrel.Lt{"start_at": rng.To}).
		GroupBy("group_key").
		OrderBy("group_key ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountBy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountBy - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	groups := make([]domain.GroupCount, 0)
	for rows.Next() {
		var g domain.GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, fmt.Errorf("%w: CountBy - scan group: %v", ErrScanRow, err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountBy - rows error: %w", ErrScanRow, err)
	}

	return groups, nil
}

// SumRevenue сумма цен неотмененных записей периода rng
func (r *Repository) SumRevenue(ctx context.Context, rng domain.DateRange) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(price), 0)").
		From(table).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.GtOrEq{"start_at": rng.From}).
		Where(squirrel.Lt{"start_at": rng.To}).
		ToSql()

	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumRevenue - build select query: %v", ErrBuildQuery, err)
	}

	var revenue decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumRevenue - scan revenue: %w", ErrScanRow, err)
	}

	return revenue, nil
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var notes sql.NullString

	err := row.Scan(
		&appointment.ID,
		&appointment.ClientName,
		&appointment.ClientPhone,
		&appointment.Date,
		&appointment.DurationMinutes,
		&appointment.BarberID,
		&appointment.ServiceID,
		&appointment.BarberName,
		&appointment.ServiceName,
		&appointment.Price,
		&appointment.Status,
		&notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Notes = notes.String
	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// endAtExpr новое значение end_at. SET вычисляется по старой строке, поэтому
// неизмененные части берутся из колонок, а измененные передаются параметрами.
func endAtExpr(changes domain.AppointmentChanges) squirrel.Sqlizer {
	start, duration := "start_at", "duration_minutes"
	var args []interface{}

	if changes.Date != nil {
		start = "?::timestamptz"
		args = append(args, *changes.Date)
	}
	if changes.DurationMinutes != nil {
		duration = "?::int"
		args = append(args, *changes.DurationMinutes)
	}

	return squirrel.Expr(fmt.Sprintf("%s + make_interval(mins => %s)", start, duration), args...)
}

// containsPattern шаблон LIKE "содержит подстроку" с экранированием спецсимволов
func containsPattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(s) + "%"
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeExclusionViolation
}
