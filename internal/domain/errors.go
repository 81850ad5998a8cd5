package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// Виды ошибок ядра. Ошибки пакетов оборачивают их через %w, обработчики различают их через errors.Is.
var (
	// ErrValidation входные данные не прошли проверку
	ErrValidation = errors.New("validation error")

	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("not found")

	// ErrConflict интервал пересекается с неотмененной записью того же барбера
	ErrConflict = errors.New("schedule conflict")

	// ErrStorage ошибка хранилища (соединение, таймаут)
	ErrStorage = errors.New("storage error")

	// ErrNoOp обновление не изменило ни одного поля
	ErrNoOp = errors.New("no changes applied")
)

// ValidationError содержит все нарушенные правила, а не только первое
type ValidationError struct {
	Rules []string
}

// NewValidationError создает ошибку валидации
func NewValidationError(rules ...string) *ValidationError {
	return &ValidationError{Rules: rules}
}

// Add добавляет нарушенное правило
func (e *ValidationError) Add(rule string) {
	e.Rules = append(e.Rules, rule)
}

// HasErrors true, если есть хотя бы одно нарушение
func (e *ValidationError) HasErrors() bool {
	return len(e.Rules) > 0
}

// OrNil возвращает nil, если нарушений нет. Нужен, чтобы не вернуть типизированный nil в error.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Rules, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError конфликт расписания с указанием занятой записи
type ConflictError struct {
	BarberID objectid.ID
	// Existing запись, с которой пересекается кандидат. Может быть nil, если конфликт обнаружен
	// ограничением БД и запись не удалось перечитать.
	Existing *Appointment
}

// NewConflictError конфликт с копией занятой записи, время которой переведено в зону салона loc
func NewConflictError(barberID objectid.ID, existing *Appointment, loc *time.Location) *ConflictError {
	if existing != nil && loc != nil {
		copied := *existing
		copied.Date = copied.Date.In(loc)
		copied.CreatedAt = copied.CreatedAt.In(loc)
		copied.UpdatedAt = copied.UpdatedAt.In(loc)
		existing = &copied
	}
	return &ConflictError{BarberID: barberID, Existing: existing}
}

func (e *ConflictError) Error() string {
	if e.Existing == nil {
		return fmt.Sprintf("%s: barber %s is busy", ErrConflict, e.BarberID)
	}
	return fmt.Sprintf("%s: barber %s is busy from %s to %s (appointment %s)",
		ErrConflict, e.BarberID,
		e.Existing.Date.Format(time.RFC3339), e.Existing.End().Format(time.RFC3339),
		e.Existing.ID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ParseID разбирает идентификатор на границе ядра; некорректный -> ValidationError
func ParseID(field, raw string) (objectid.ID, error) {
	id, err := objectid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return objectid.Nil, NewValidationError(fmt.Sprintf("%s is not a valid identifier", field))
	}
	return id, nil
}
