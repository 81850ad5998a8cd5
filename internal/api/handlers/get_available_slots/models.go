package get_available_slots

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-BarberScheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	BarberID        objectid.ID     `json:"barberId"`
	DurationMinutes int             `json:"duration"`
	Slots           []AvailableSlot `json:"slots"`
	Count           int             `json:"count"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string    `json:"startTime"` // HH:MM в зоне салона
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// FromUseCaseResponse материализует последовательность слотов в HTTP response
func FromUseCaseResponse(req *getAvailableSlots.Request, slots iter.Seq[domain.Slot], loc *time.Location) *AvailableSlotsResponse {
	resp := &AvailableSlotsResponse{
		Date:            domain.StartOfDay(req.Date, loc).Format(domain.DateFormat),
		BarberID:        req.BarberID,
		DurationMinutes: req.DurationMinutes,
		Slots:           []AvailableSlot{},
	}

	for slot := range slots {
		start := slot.Start.In(loc)
		resp.Slots = append(resp.Slots, AvailableSlot{
			StartTime: start.Format("15:04"),
			Start:     start,
			End:       slot.End.In(loc),
			Available: slot.Available,
		})
	}
	resp.Count = len(resp.Slots)

	return resp
}
