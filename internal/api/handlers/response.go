package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/txmanager"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgValidation    = "некорректные данные запроса"
	msgNotFound      = "запись не найдена"
	msgConflict      = "барбер занят в выбранное время"
	msgNoOp          = "изменений нет"
	msgUnavailable   = "сервис временно недоступен, повторите запрос"

	// maxBodyBytes ограничение размера тела запроса
	maxBodyBytes = 1 << 20
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error    string           `json:"error"`
	Rules    []string         `json:"rules,omitempty"`
	Conflict *ConflictDetails `json:"conflict,omitempty"`
}

// ConflictDetails занятая запись, с которой пересекается кандидат
type ConflictDetails struct {
	AppointmentID objectid.ID `json:"appointmentId"`
	Start         time.Time   `json:"start"`
	End           time.Time   `json:"end"`
}

// RespondJSON пишет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError переводит вид ошибки ядра в HTTP-статус и пишет ответ.
// Возвращает статус, чтобы обработчик выбрал уровень логирования.
func RespondDomainError(w http.ResponseWriter, err error) int {
	var verr *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &verr):
		RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgValidation, Rules: verr.Rules})
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, msgValidation)
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrNotFound):
		RespondNotFound(w, msgNotFound)
		return http.StatusNotFound

	case errors.As(err, &conflict):
		resp := ErrorResponse{Error: msgConflict}
		if conflict.Existing != nil {
			resp.Conflict = &ConflictDetails{
				AppointmentID: conflict.Existing.ID,
				Start:         conflict.Existing.Date,
				End:           conflict.Existing.End(),
			}
		}
		RespondJSON(w, http.StatusConflict, resp)
		return http.StatusConflict

	case errors.Is(err, domain.ErrConflict):
		RespondError(w, http.StatusConflict, msgConflict)
		return http.StatusConflict

	case errors.Is(err, domain.ErrNoOp):
		RespondError(w, http.StatusUnprocessableEntity, msgNoOp)
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrStorage),
		errors.Is(err, txmanager.ErrBeginTx),
		errors.Is(err, txmanager.ErrSerialization):
		RespondError(w, http.StatusServiceUnavailable, msgUnavailable)
		return http.StatusServiceUnavailable

	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}

// DecodeJSON читает тело запроса. Неизвестные поля отклоняются.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// QueryInt читает целочисленный параметр запроса; пустой -> def
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s: %w", key, err)
	}
	return v, nil
}
