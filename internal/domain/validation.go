package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

// Телефон: от 8 до 15 цифр после удаления разделителей
const (
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

var phoneSeparators = strings.NewReplacer(" ", "", "+", "", "-", "", "(", "", ")", "", ".", "")

// ErrInvalidDateTime строка не является датой и временем ни в одном из поддерживаемых форматов
var ErrInvalidDateTime = errors.New("invalid date-time")

// IsValidPhone проверяет формат телефона клиента
func IsValidPhone(phone string) bool {
	digits := phoneSeparators.Replace(phone)
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// ParseDateTime разбирает начало записи. RFC3339 сохраняет указанную зону,
// время без зоны (YYYY-MM-DDTHH:MM[:SS]) трактуется в зоне салона loc.
func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range []string{LocalDateTimeFormat, LocalDateTimeFormat + ":05"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDateTime
}

// ParseDate разбирает календарный день YYYY-MM-DD в зоне loc
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateFormat, strings.TrimSpace(raw), loc)
}
