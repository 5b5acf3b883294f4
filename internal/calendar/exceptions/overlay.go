package exceptions

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

type key struct {
	eventID int64
	date    string
}

func keyOf(eventID int64, date time.Time) key {
	return key{eventID: eventID, date: date.Format(domain.DateFormat)}
}

// Index holds at most one exception per (event, date).
// Putting a second exception for the same pair replaces the first.
type Index struct {
	byKey map[key]*domain.EventException
}

// NewIndex builds an index; later entries of list win over earlier ones
func NewIndex(list []*domain.EventException) *Index {
	idx := &Index{byKey: make(map[key]*domain.EventException, len(list))}
	for _, exc := range list {
		idx.Put(exc)
	}
	return idx
}

// Put stores exc, overwriting any exception for the same event and date
func (i *Index) Put(exc *domain.EventException) {
	if exc == nil {
		return
	}
	i.byKey[keyOf(exc.EventID, exc.ExceptionDate)] = exc
}

// Lookup returns the exception for the event on the date
func (i *Index) Lookup(eventID int64, date time.Time) (*domain.EventException, bool) {
	if i == nil {
		return nil, false
	}
	exc, ok := i.byKey[keyOf(eventID, date)]
	return exc, ok
}

// Len number of indexed exceptions
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byKey)
}

// Apply overlays exceptions onto occurrences.
// Cancelled occurrences are dropped, modified and moved ones are replaced by an
// overridden copy, the rest pass through unchanged. Input rows are never mutated.
func Apply(occurrences []*domain.CalendarEvent, idx *Index) []*domain.CalendarEvent {
	result := make([]*domain.CalendarEvent, 0, len(occurrences))
	for _, occ := range occurrences {
		if applied, keep := ApplyOne(occ, idx); keep {
			result = append(result, applied)
		}
	}
	return result
}

// ApplyOne overlays the matching exception onto a single occurrence.
// The second result is false when the occurrence is cancelled.
func ApplyOne(occ *domain.CalendarEvent, idx *Index) (*domain.CalendarEvent, bool) {
	exc, ok := idx.Lookup(occ.ID, occ.OccurrenceDate())
	if !ok {
		return occ, true
	}

	switch exc.Type {
	case domain.ExceptionCancelled:
		return nil, false
	case domain.ExceptionModified, domain.ExceptionMoved:
		return overlay(occ, exc), true
	default:
		return occ, true
	}
}

func overlay(occ *domain.CalendarEvent, exc *domain.EventException) *domain.CalendarEvent {
	out := occ.Clone()

	// Сохраняем исходный слот, чтобы ключ даты не сдвигался вместе с событием
	if out.OriginalStart == nil {
		original := occ.Start
		out.OriginalStart = &original
	}

	if exc.NewStart != nil {
		out.Start = *exc.NewStart
	}
	if exc.NewEnd != nil {
		out.End = *exc.NewEnd
	}
	if exc.NewTitle != nil {
		out.Title = *exc.NewTitle
	}
	if exc.NewDescription != nil {
		description := *exc.NewDescription
		out.Description = &description
	}
	return out
}
