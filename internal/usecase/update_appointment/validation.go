package update_appointment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
	"github.com/m04kA/SMC-BarberScheduler/pkg/ptr"
)

// validateRequest проверяет заданные поля и собирает изменения. Возвращает все нарушения сразу.
func validateRequest(req *Request, loc *time.Location) (objectid.ID, domain.AppointmentChanges, error) {
	verr := &domain.ValidationError{}
	var changes domain.AppointmentChanges

	id, err := domain.ParseID("appointment id", req.ID)
	if err != nil {
		verr.Add("appointment id is not a valid identifier")
	}

	if req.ClientName != nil {
		name := strings.TrimSpace(*req.ClientName)
		switch {
		case name == "":
			verr.Add("client name must not be empty")
		case utf8.RuneCountInString(name) > domain.MaxClientNameLength:
			verr.Add(fmt.Sprintf("client name must be at most %d characters", domain.MaxClientNameLength))
		default:
			changes.ClientName = &name
		}
	}

	if req.ClientPhone != nil {
		phone := strings.TrimSpace(*req.ClientPhone)
		switch {
		case phone == "":
			verr.Add("client phone must not be empty")
		case !domain.IsValidPhone(phone):
			verr.Add("client phone must contain 8 to 15 digits")
		default:
			changes.ClientPhone = &phone
		}
	}

	if req.Date != nil {
		start, err := domain.ParseDateTime(*req.Date, loc)
		if err != nil {
			verr.Add("date must be RFC3339 or YYYY-MM-DDTHH:MM")
		} else {
			changes.Date = &start
		}
	}

	if req.DurationMinutes != nil {
		switch d := *req.DurationMinutes; {
		case d <= 0:
			verr.Add("duration must be greater than zero")
		case d > domain.MaxDurationMinutes:
			verr.Add(fmt.Sprintf("duration must be at most %d minutes", domain.MaxDurationMinutes))
		default:
			changes.DurationMinutes = ptr.Ptr(d)
		}
	}

	if req.BarberID != nil {
		barberID, err := domain.ParseID("barber id", *req.BarberID)
		if err != nil {
			verr.Add("barber id is not a valid identifier")
		} else {
			changes.BarberID = &barberID
		}
	}

	if req.ServiceID != nil {
		serviceID, err := domain.ParseID("service id", *req.ServiceID)
		if err != nil {
			verr.Add("service id is not a valid identifier")
		} else {
			changes.ServiceID = &serviceID
		}
	}

	if req.Price != nil {
		if req.Price.IsNegative() {
			verr.Add("price must not be negative")
		} else {
			changes.Price = ptr.Ptr(*req.Price)
		}
	}

	if req.Status != nil {
		status := domain.AppointmentStatus(strings.TrimSpace(*req.Status))
		if !status.IsValid() {
			verr.Add("status must be one of scheduled, completed, cancelled")
		} else {
			changes.Status = &status
		}
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if utf8.RuneCountInString(notes) > domain.MaxNotesLength {
			verr.Add(fmt.Sprintf("notes must be at most %d characters", domain.MaxNotesLength))
		} else {
			changes.Notes = &notes
		}
	}

	if err := verr.OrNil(); err != nil {
		return objectid.Nil, domain.AppointmentChanges{}, err
	}
	return id, changes, nil
}
