package slots

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// ConflictCheck reports whether a candidate is blocked by a calendar event.
// sourceEventID is the availability event the candidate came from, nil for legacy slots.
type ConflictCheck func(candidate domain.Interval, sourceEventID *int64) (bool, error)

// Walk steps through window with the given step and returns every candidate of
// the given length that fits entirely inside the window.
func Walk(window domain.Interval, length, step time.Duration) []domain.Interval {
	if length <= 0 || step <= 0 || !window.IsValid() {
		return nil
	}

	candidates := make([]domain.Interval, 0)
	for start := window.Start; !start.Add(length).After(window.End); start = start.Add(step) {
		candidates = append(candidates, domain.NewInterval(start, length))
	}
	return candidates
}

// List walks every window in increments equal to length, so each emitted slot
// is an exact, non-overlapping booking of the requested length. A candidate is
// dropped when it overlaps a busy interval or Admits rejects it.
// The result is de-duplicated by start and sorted.
func List(windows []domain.AvailabilityWindow, length time.Duration, busy []domain.Interval, check ConflictCheck) ([]domain.Interval, error) {
	groups := make([][]domain.Interval, 0, len(windows))

	for _, w := range windows {
		free := make([]domain.Interval, 0)
		for _, candidate := range Walk(w.Interval, length, length) {
			if OverlapsAny(candidate, busy) {
				continue
			}
			ok, err := Admits(candidate, windows, check)
			if err != nil {
				return nil, err
			}
			if ok {
				free = append(free, candidate)
			}
		}
		groups = append(groups, free)
	}

	return Merge(groups...), nil
}

// OverlapsAny reports whether candidate overlaps one of busy
func OverlapsAny(candidate domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if domain.Overlaps(candidate, b) {
			return true
		}
	}
	return false
}

// Merge joins slot lists, keeps the first slot for every start instant and sorts by start
func Merge(groups ...[]domain.Interval) []domain.Interval {
	seen := make(map[time.Time]struct{})
	merged := make([]domain.Interval, 0)

	for _, group := range groups {
		for _, s := range group {
			key := s.Start.UTC()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, s)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})
	return merged
}

// ContainedIn reports whether candidate lies entirely inside one of the windows
// and returns that window
func ContainedIn(candidate domain.Interval, windows []domain.AvailabilityWindow) (domain.AvailabilityWindow, bool) {
	for _, w := range windows {
		if domain.Contains(w.Interval, candidate) {
			return w, true
		}
	}
	return domain.AvailabilityWindow{}, false
}

// Admits reports whether some window containing candidate has no conflict for it.
// Every window is checked with its own source event excluded, so an availability
// event never blocks a candidate it offers itself. A nil check admits any
// contained candidate.
func Admits(candidate domain.Interval, windows []domain.AvailabilityWindow, check ConflictCheck) (bool, error) {
	for _, w := range windows {
		if !domain.Contains(w.Interval, candidate) {
			continue
		}
		if check == nil {
			return true, nil
		}
		blocked, err := check(candidate, w.SourceEventID)
		if err != nil {
			return false, err
		}
		if !blocked {
			return true, nil
		}
	}
	return false, nil
}
