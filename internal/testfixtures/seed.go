package testfixtures

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// SeedDailySeries stores n daily occurrences from..to starting on first and
// returns them in date order. The first row is the base of the series.
func (s *Store) SeedDailySeries(specialistID int64, eventType domain.EventType, first time.Time, n int, from, to string) []*domain.CalendarEvent {
	seriesID := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	rows := make([]*domain.CalendarEvent, 0, n)
	for i := 0; i < n; i++ {
		day := first.AddDate(0, 0, i)
		e := Event(specialistID, eventType, At(day, from), At(day, to))
		e.SeriesID = seriesID
		if i == 0 {
			e.IsRecurring = true
			e.IsBaseInstance = true
		} else {
			start := e.Start
			e.OriginalStart = &start
		}
		created, _ := s.Events.Create(context.Background(), e)
		rows = append(rows, created)
	}
	return rows
}

// SeedEvent stores a single event and returns it
func (s *Store) SeedEvent(e *domain.CalendarEvent) *domain.CalendarEvent {
	created, _ := s.Events.Create(context.Background(), e)
	return created
}
