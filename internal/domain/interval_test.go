package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 6, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	a := Interval{Start: at(10, 0), End: at(11, 0)}

	assert.True(t, Overlaps(a, Interval{Start: at(10, 30), End: at(11, 30)}))
	assert.True(t, Overlaps(a, Interval{Start: at(9, 0), End: at(12, 0)}))
	assert.False(t, Overlaps(a, Interval{Start: at(11, 0), End: at(12, 0)}), "touching intervals do not overlap")
	assert.False(t, Overlaps(a, Interval{Start: at(8, 0), End: at(10, 0)}))
}

func TestContains(t *testing.T) {
	outer := Interval{Start: at(9, 0), End: at(12, 0)}

	assert.True(t, Contains(outer, Interval{Start: at(9, 0), End: at(12, 0)}))
	assert.True(t, Contains(outer, Interval{Start: at(11, 15), End: at(12, 0)}))
	assert.False(t, Contains(outer, Interval{Start: at(11, 30), End: at(12, 15)}))
}

func TestPad(t *testing.T) {
	padded := Interval{Start: at(10, 0), End: at(11, 0)}.Pad(5, 15)

	assert.Equal(t, at(9, 55), padded.Start)
	assert.Equal(t, at(11, 15), padded.End)
	assert.True(t, Overlaps(padded, Interval{Start: at(11, 5), End: at(11, 35)}))
}

func TestClip(t *testing.T) {
	day := DayBounds(at(0, 0))

	clipped, ok := Interval{Start: at(22, 0), End: at(22, 0).Add(4 * time.Hour)}.Clip(day)
	assert.True(t, ok)
	assert.Equal(t, day.End, clipped.End)

	_, ok = Interval{Start: day.End, End: day.End.Add(time.Hour)}.Clip(day)
	assert.False(t, ok)
}

func TestWeekdayIndex(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, WeekdayIndex(monday))
	assert.Equal(t, 6, WeekdayIndex(monday.AddDate(0, 0, 6)))
	assert.False(t, IsWeekend(monday))
	assert.True(t, IsWeekend(monday.AddDate(0, 0, 5)))
}

func TestNormalizeContacts(t *testing.T) {
	assert.Equal(t, "jane@x.com", NormalizeEmail("  Jane@X.com "))
	assert.Equal(t, "15551234567", NormalizePhone("+1 (555) 123-4567"))
	assert.Equal(t, "", NormalizePhone("n/a"))

	email := "Jane@X.com"
	assert.True(t, ContactInfo{Email: &email}.HasIdentity())
	assert.False(t, ContactInfo{Name: "Jane"}.HasIdentity())
}

func TestBookingTransitions(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.CanTransitionTo(StatusCompleted))
	assert.True(t, b.CanTransitionTo(StatusCancelled))
	assert.False(t, b.CanTransitionTo(StatusConfirmed))

	b.Status = StatusCancelled
	assert.False(t, b.CanTransitionTo(StatusCompleted))
}

func TestWorkingHoursCovers(t *testing.T) {
	wh := &WorkingHours{
		IsWorkingDay: true,
		TimeRanges:   []TimeRange{{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}},
	}

	assert.True(t, wh.Covers(Interval{Start: at(11, 30), End: at(12, 0)}))
	assert.False(t, wh.Covers(Interval{Start: at(11, 45), End: at(12, 15)}))
	assert.True(t, wh.Covers(Interval{Start: at(13, 0), End: at(13, 30)}))

	wh.IsWorkingDay = false
	assert.False(t, wh.Covers(Interval{Start: at(9, 0), End: at(9, 30)}))
}

func TestEventOccurrenceDate(t *testing.T) {
	original := time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC)
	e := &CalendarEvent{Start: time.Date(2025, 1, 9, 15, 0, 0, 0, time.UTC), OriginalStart: &original}
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), e.OccurrenceDate())

	e.OriginalStart = nil
	assert.Equal(t, time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), e.OccurrenceDate())
}

func TestBookingInterval(t *testing.T) {
	b := &Booking{Date: at(0, 0), StartTime: types.TimeString("10:30"), EndTime: types.TimeString("11:15")}
	assert.Equal(t, Interval{Start: at(10, 30), End: at(11, 15)}, b.Interval())
}
