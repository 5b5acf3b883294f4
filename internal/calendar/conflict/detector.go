package conflict

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/exceptions"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// ErrLoadEvents возвращается при ошибке загрузки событий
var ErrLoadEvents = errors.New("conflict: failed to load events")

// Detector checks a proposed interval against a specialist's events.
// Every candidate is padded by its own buffers before the overlap test.
type Detector struct {
	events     EventRepository
	exceptions ExceptionRepository
}

// NewDetector создает детектор конфликтов
func NewDetector(events EventRepository, excRepo ExceptionRepository) *Detector {
	return &Detector{events: events, exceptions: excRepo}
}

// HasConflict reports whether proposed overlaps any active, non-cancelled
// event of the specialist after buffer padding. excludeEventID, when set,
// is ignored as a candidate.
func (d *Detector) HasConflict(ctx context.Context, specialistID int64, proposed domain.Interval, excludeEventID *int64) (bool, error) {
	candidates, err := d.Candidates(ctx, specialistID, proposed)
	if err != nil {
		return false, err
	}
	return Collides(candidates, proposed, excludeEventID) != nil, nil
}

// Candidates loads the events that may collide with proposed, exceptions applied.
// The load window is widened by the maximum buffer so that buffer-only overlaps are found.
func (d *Detector) Candidates(ctx context.Context, specialistID int64, proposed domain.Interval) ([]*domain.CalendarEvent, error) {
	window := proposed.Pad(domain.MaxBufferMinutes, domain.MaxBufferMinutes)

	events, err := d.events.ListOverlapping(ctx, specialistID, window)
	if err != nil {
		return nil, fmt.Errorf("%w: list events: %w", ErrLoadEvents, err)
	}

	excs, err := d.exceptions.ListInWindow(ctx, specialistID, window)
	if err != nil {
		return nil, fmt.Errorf("%w: list exceptions: %w", ErrLoadEvents, err)
	}

	// Догружаем события, перенесенные в окно исключением
	loaded := make(map[int64]struct{}, len(events))
	for _, e := range events {
		loaded[e.ID] = struct{}{}
	}
	missing := make([]int64, 0)
	for _, exc := range excs {
		if _, ok := loaded[exc.EventID]; !ok {
			missing = append(missing, exc.EventID)
			loaded[exc.EventID] = struct{}{}
		}
	}
	if len(missing) > 0 {
		moved, err := d.events.GetByIDs(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("%w: load moved events: %w", ErrLoadEvents, err)
		}
		for _, e := range moved {
			if e.IsActive {
				events = append(events, e)
			}
		}
	}

	return exceptions.Apply(events, exceptions.NewIndex(excs)), nil
}

// Collides returns the first candidate whose padded interval overlaps proposed,
// or nil. Inactive and cancelled candidates never collide.
func Collides(candidates []*domain.CalendarEvent, proposed domain.Interval, excludeEventID *int64) *domain.CalendarEvent {
	for _, c := range candidates {
		if excludeEventID != nil && c.ID == *excludeEventID {
			continue
		}
		if !c.Blocks() {
			continue
		}
		if domain.Overlaps(c.PaddedInterval(), proposed) {
			return c
		}
	}
	return nil
}
