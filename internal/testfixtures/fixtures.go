package testfixtures

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// At returns the instant "HH:MM" on date
func At(date time.Time, clock string) time.Time {
	return types.TimeString(clock).On(date)
}

// Event returns an active, confirmed, public event of the given type
func Event(specialistID int64, eventType domain.EventType, start, end time.Time) *domain.CalendarEvent {
	return &domain.CalendarEvent{
		SpecialistID: specialistID,
		Title:        string(eventType),
		Start:        start,
		End:          end,
		Timezone:     "UTC",
		EventType:    eventType,
		Priority:     domain.PriorityNormal,
		Visibility:   domain.VisibilityPublic,
		IsBookable:   eventType == domain.EventTypeAvailability,
		Status:       domain.EventStatusConfirmed,
		IsActive:     true,
	}
}
