package domain

import "time"

// Interval is a half-open time range [Start, End).
// All arithmetic is naive: instants are compared as wall-clock UTC values and
// the event timezone is a display label only.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval of the given length starting at start.
func NewInterval(start time.Time, length time.Duration) Interval {
	return Interval{Start: start, End: start.Add(length)}
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsValid reports whether End is strictly after Start.
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Pad widens the interval by before minutes at the start and after minutes at the end.
func (i Interval) Pad(beforeMinutes, afterMinutes int) Interval {
	return Interval{
		Start: i.Start.Add(-time.Duration(beforeMinutes) * time.Minute),
		End:   i.End.Add(time.Duration(afterMinutes) * time.Minute),
	}
}

// Clip returns the part of i that lies inside bounds and whether it is non-empty.
func (i Interval) Clip(bounds Interval) (Interval, bool) {
	out := i
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out, out.IsValid()
}

// Overlaps reports whether a and b share at least one instant.
// Touching intervals (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner Interval) bool {
	return !inner.Start.Before(outer.Start) && !inner.End.After(outer.End)
}

// DateOf truncates t to midnight, keeping its location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayBounds returns [midnight, next midnight) of the given date.
func DayBounds(date time.Time) Interval {
	start := DateOf(date)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekdayIndex returns the weekday with Monday as 0 and Sunday as 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	return WeekdayIndex(t) >= 5
}
