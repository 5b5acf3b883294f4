package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// AvailabilitySlot is a legacy availability window for one date,
// kept in parallel with availability calendar events
type AvailabilitySlot struct {
	ID           int64            `db:"id"`
	SpecialistID int64            `db:"specialist_id"`
	Date         time.Time        `db:"date"`
	StartTime    types.TimeString `db:"start_time"`
	EndTime      types.TimeString `db:"end_time"`
	IsAvailable  bool             `db:"is_available"`
}

// Interval returns the window on its date
func (s *AvailabilitySlot) Interval() Interval {
	return Interval{Start: s.StartTime.On(s.Date), End: s.EndTime.On(s.Date)}
}

// AvailabilityWindow is a source window the slot walk runs over
type AvailabilityWindow struct {
	Interval
	SourceEventID *int64 // availability event the window came from, nil for legacy slots
}

// Suggestion is a ranked candidate start for a professional's own scheduling
type Suggestion struct {
	Interval
	Score  float64
	Reason string
}
