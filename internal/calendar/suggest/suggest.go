package suggest

import (
	"errors"
	"sort"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/conflict"
	"github.com/m04kA/SMC-CalendarService/internal/calendar/slots"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// ErrInvalidQuery возвращается при некорректных параметрах поиска
var ErrInvalidQuery = errors.New("suggest: invalid query")

// Query range and shape of the searched slots
type Query struct {
	From            time.Time
	To              time.Time
	Duration        time.Duration
	Step            time.Duration
	ExcludeWeekends bool
	Limit           int
	NearbyWindow    time.Duration
	Now             time.Time
}

// Schedule everything known about the specialist in the searched range
type Schedule struct {
	// WorkingHours by weekday, 0 = Monday
	WorkingHours map[int]*domain.WorkingHours
	Preferences  *domain.SchedulingPreferences
	// Events active events with exceptions applied
	Events []*domain.CalendarEvent
	// Bookings confirmed bookings
	Bookings []*domain.Booking
}

// Rank walks [From, To) in Step increments and returns the best candidates by
// descending score. A candidate must lie inside the day's working hours, miss
// the break and lunch windows, collide with no event or confirmed booking and
// fall on a day that is not yet at the daily booking limit.
func Rank(q Query, s Schedule) ([]domain.Suggestion, error) {
	if q.Duration <= 0 || q.Step <= 0 || !q.To.After(q.From) {
		return nil, ErrInvalidQuery
	}
	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultSuggestionLimit
	}
	prefs := s.Preferences
	if prefs == nil {
		prefs = &domain.SchedulingPreferences{}
	}

	busy := make([]domain.Interval, 0, len(s.Bookings))
	daily := make(map[string]int)
	for _, b := range s.Bookings {
		if !b.IsConfirmed() {
			continue
		}
		busy = append(busy, b.Interval())
		daily[b.Date.Format(domain.DateFormat)]++
	}

	suggestions := make([]domain.Suggestion, 0)
	for start := q.From; !start.Add(q.Duration).After(q.To); start = start.Add(q.Step) {
		candidate := domain.NewInterval(start, q.Duration)

		if start.Before(q.Now) {
			continue
		}
		if q.ExcludeWeekends && domain.IsWeekend(start) {
			continue
		}
		if prefs.MaxDailyBookings != nil && daily[start.Format(domain.DateFormat)] >= *prefs.MaxDailyBookings {
			continue
		}

		wh, ok := s.WorkingHours[domain.WeekdayIndex(start)]
		if !ok || wh == nil || !wh.IsActive || !wh.Covers(candidate) {
			continue
		}
		if w, ok := wh.BreakWindow(start); ok && domain.Overlaps(w, candidate) {
			continue
		}
		if w, ok := prefs.LunchWindow(start); ok && domain.Overlaps(w, candidate) {
			continue
		}

		if slots.OverlapsAny(candidate, busy) {
			continue
		}
		if conflict.Collides(s.Events, candidate, nil) != nil {
			continue
		}

		nearby := countNearby(start, q.NearbyWindow, s.Events, busy)
		factors, reason := Evaluate(start, q.Now, prefs.MinBookingNotice, nearby)

		suggestions = append(suggestions, domain.Suggestion{
			Interval: candidate,
			Score:    factors.Score(),
			Reason:   reason,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Start.Before(suggestions[j].Start)
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// countNearby counts blocking events and bookings starting within ±window of start
func countNearby(start time.Time, window time.Duration, events []*domain.CalendarEvent, bookings []domain.Interval) int {
	if window <= 0 {
		window = time.Duration(domain.DefaultNearbyWindowMinutes) * time.Minute
	}
	near := func(t time.Time) bool {
		d := t.Sub(start)
		return d >= -window && d <= window
	}

	n := 0
	for _, e := range events {
		if e.Blocks() && near(e.Start) {
			n++
		}
	}
	for _, b := range bookings {
		if near(b.Start) {
			n++
		}
	}
	return n
}
