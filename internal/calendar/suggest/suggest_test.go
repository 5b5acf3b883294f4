package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// понедельник 2025-03-10
func at(d, hour, minute int) time.Time {
	return time.Date(2025, 3, d, hour, minute, 0, 0, time.UTC)
}

func weekHours(ranges ...domain.TimeRange) map[int]*domain.WorkingHours {
	hours := make(map[int]*domain.WorkingHours)
	for day := 0; day < 7; day++ {
		hours[day] = &domain.WorkingHours{DayOfWeek: day, IsWorkingDay: true, IsActive: true, TimeRanges: ranges}
	}
	return hours
}

func baseQuery() Query {
	return Query{
		From:     at(10, 8, 0),
		To:       at(10, 18, 0),
		Duration: 30 * time.Minute,
		Step:     30 * time.Minute,
		Now:      at(3, 8, 0),
	}
}

func TestEvaluate_Factors(t *testing.T) {
	now := at(10, 6, 0)

	f, reason := Evaluate(at(10, 9, 0), now, 60, 0)
	assert.Equal(t, Factors{TimeOfDay: 1.0, Weekday: 1.0, Notice: 1.0, Density: 1.0}, f)
	assert.Equal(t, 1.0, f.Score())
	assert.Equal(t, "peak hour, weekday, ample notice, quiet period", reason)

	f, _ = Evaluate(at(15, 11, 0), now, 60, 2)
	assert.InDelta(t, 0.8*0.7*1.0*0.9, f.Score(), 1e-9)

	f, _ = Evaluate(at(10, 7, 0), now, 60, 3)
	assert.Equal(t, 0.6, f.TimeOfDay)
	assert.Equal(t, 0.8, f.Notice)
	assert.Equal(t, 0.7, f.Density)

	f, _ = Evaluate(at(10, 6, 30), now, 60, 0)
	assert.Equal(t, 0.3, f.Notice)
}

func TestRank_TopByScoreWithinWorkingHours(t *testing.T) {
	s := Schedule{
		WorkingHours: weekHours(domain.TimeRange{Start: "08:00", End: "17:00"}),
		Preferences:  &domain.SchedulingPreferences{MinBookingNotice: 60},
	}

	got, err := Rank(baseQuery(), s)
	require.NoError(t, err)

	require.Len(t, got, 10)
	assert.Equal(t, at(10, 9, 0), got[0].Start)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
	for _, sug := range got {
		assert.False(t, sug.End.After(at(10, 17, 0)))
		assert.LessOrEqual(t, sug.Score, 1.0)
	}
}

func TestRank_SkipsConflictsBreaksAndBookings(t *testing.T) {
	hours := weekHours(domain.TimeRange{Start: "09:00", End: "11:00"})
	hours[0].BreakStart = ptr.Ptr(types.TimeString("10:15"))
	hours[0].BreakDuration = 15

	block := &domain.CalendarEvent{
		ID: 1, Start: at(10, 9, 0), End: at(10, 9, 30), BufferAfter: 10,
		Status: domain.EventStatusConfirmed, IsActive: true, EventType: domain.EventTypeBlock,
	}
	booking := &domain.Booking{Date: at(10, 0, 0), StartTime: "10:30", EndTime: "11:00", Status: domain.StatusConfirmed}

	q := baseQuery()
	q.Step = 15 * time.Minute
	got, err := Rank(q, Schedule{
		WorkingHours: hours,
		Preferences:  &domain.SchedulingPreferences{},
		Events:       []*domain.CalendarEvent{block},
		Bookings:     []*domain.Booking{booking},
	})
	require.NoError(t, err)

	starts := make([]time.Time, 0, len(got))
	for _, s := range got {
		starts = append(starts, s.Start)
	}
	// 09:00-09:40 занято событием с буфером, 10:15-10:30 перерыв, 10:30-11:00 бронь
	assert.ElementsMatch(t, []time.Time{at(10, 9, 45)}, starts)
}

func TestRank_ExcludeWeekendsAndDailyLimit(t *testing.T) {
	q := baseQuery()
	q.From = at(14, 9, 0) // пятница
	q.To = at(16, 10, 0)  // воскресенье
	q.Step = time.Hour
	q.Limit = 50
	q.ExcludeWeekends = true

	friday := &domain.Booking{Date: at(14, 0, 0), StartTime: "16:00", EndTime: "16:30", Status: domain.StatusConfirmed}

	got, err := Rank(q, Schedule{
		WorkingHours: weekHours(domain.TimeRange{Start: "09:00", End: "10:00"}),
		Preferences:  &domain.SchedulingPreferences{MaxDailyBookings: ptr.Ptr(1)},
		Bookings:     []*domain.Booking{friday},
	})
	require.NoError(t, err)
	assert.Empty(t, got)

	q.ExcludeWeekends = false
	got, err = Rank(q, Schedule{
		WorkingHours: weekHours(domain.TimeRange{Start: "09:00", End: "10:00"}),
		Preferences:  &domain.SchedulingPreferences{MaxDailyBookings: ptr.Ptr(1)},
		Bookings:     []*domain.Booking{friday},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, at(15, 9, 0), got[0].Start)
	assert.Equal(t, at(16, 9, 0), got[1].Start)
	assert.Contains(t, got[0].Reason, "weekend")
}

func TestRank_InvalidQuery(t *testing.T) {
	q := baseQuery()
	q.To = q.From

	_, err := Rank(q, Schedule{})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
