package create_appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// validateRequest проверяет все правила сразу и возвращает ValidationError со списком нарушений
func validateRequest(req *Request, loc *time.Location) (*validRequest, error) {
	verr := &domain.ValidationError{}
	v := &validRequest{
		clientName:      strings.TrimSpace(req.ClientName),
		clientPhone:     strings.TrimSpace(req.ClientPhone),
		durationMinutes: domain.DefaultDurationMinutes,
		barberName:      strings.TrimSpace(req.BarberName),
		serviceName:     strings.TrimSpace(req.ServiceName),
		price:           decimal.Zero,
		notes:           strings.TrimSpace(req.Notes),
	}

	switch {
	case v.clientName == "":
		verr.Add("client name is required")
	case utf8.RuneCountInString(v.clientName) > domain.MaxClientNameLength:
		verr.Add(fmt.Sprintf("client name must be at most %d characters", domain.MaxClientNameLength))
	}

	switch {
	case v.clientPhone == "":
		verr.Add("client phone is required")
	case !domain.IsValidPhone(v.clientPhone):
		verr.Add("client phone must contain 8 to 15 digits")
	}

	if strings.TrimSpace(req.Date) == "" {
		verr.Add("date is required")
	} else if start, err := domain.ParseDateTime(req.Date, loc); err != nil {
		verr.Add("date must be RFC3339 or YYYY-MM-DDTHH:MM")
	} else {
		v.start = start
	}

	v.barberID = parseRequiredID(verr, "barber id", req.BarberID)
	v.serviceID = parseRequiredID(verr, "service id", req.ServiceID)

	if req.DurationMinutes != nil {
		switch d := *req.DurationMinutes; {
		case d <= 0:
			verr.Add("duration must be greater than zero")
		case d > domain.MaxDurationMinutes:
			verr.Add(fmt.Sprintf("duration must be at most %d minutes", domain.MaxDurationMinutes))
		default:
			v.durationMinutes = d
		}
	}

	if req.Price != nil {
		if req.Price.IsNegative() {
			verr.Add("price must not be negative")
		} else {
			v.price = *req.Price
		}
	}

	if utf8.RuneCountInString(v.notes) > domain.MaxNotesLength {
		verr.Add(fmt.Sprintf("notes must be at most %d characters", domain.MaxNotesLength))
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return v, nil
}

func parseRequiredID(verr *domain.ValidationError, field, raw string) objectid.ID {
	if strings.TrimSpace(raw) == "" {
		verr.Add(field + " is required")
		return objectid.Nil
	}
	if !objectid.IsValid(strings.TrimSpace(raw)) {
		verr.Add(field + " is not a valid identifier")
		return objectid.Nil
	}
	return objectid.MustParse(strings.TrimSpace(raw))
}
