package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// TimeRange is a wall-clock range within one day
type TimeRange struct {
	Start types.TimeString `json:"start_time"`
	End   types.TimeString `json:"end_time"`
}

// IsValid reports whether both bounds parse and Start < End
func (r TimeRange) IsValid() bool {
	return r.Start.Validate() == nil && r.End.Validate() == nil && r.Start.IsBefore(r.End)
}

// On returns the range as an interval on the given date
func (r TimeRange) On(date time.Time) Interval {
	return Interval{Start: r.Start.On(date), End: r.End.On(date)}
}

// WorkingHours per specialist per weekday (0 = Monday .. 6 = Sunday).
// Used only as a filter of smart suggestions.
type WorkingHours struct {
	ID            int64
	SpecialistID  int64
	DayOfWeek     int
	TimeRanges    []TimeRange
	IsWorkingDay  bool
	BreakStart    *types.TimeString
	BreakDuration int // minutes
	IsActive      bool
	EffectiveDate *time.Time
}

// BreakWindow returns the break as an interval on date, if any
func (w *WorkingHours) BreakWindow(date time.Time) (Interval, bool) {
	if w.BreakStart == nil || w.BreakDuration <= 0 {
		return Interval{}, false
	}
	start := w.BreakStart.On(date)
	return NewInterval(start, time.Duration(w.BreakDuration)*time.Minute), true
}

// Covers reports whether the candidate lies inside one of the day's ranges
func (w *WorkingHours) Covers(candidate Interval) bool {
	if !w.IsWorkingDay {
		return false
	}
	date := DateOf(candidate.Start)
	for _, r := range w.TimeRanges {
		if Contains(r.On(date), candidate) {
			return true
		}
	}
	return false
}

// SchedulingPreferences per specialist; read-only input to scoring and booking windows
type SchedulingPreferences struct {
	ID                  int64
	SpecialistID        int64
	DefaultBufferBefore int
	DefaultBufferAfter  int
	AdvanceBookingDays  int // 0 = unlimited
	MinBookingNotice    int // minutes
	MaxDailyBookings    *int
	MaxWeeklyBookings   *int
	MinimumSlotDuration int
	SlotIncrement       int
	LunchBreakStart     *types.TimeString
	LunchBreakDuration  int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultPreferences preferences used when a specialist has none stored
func DefaultPreferences(specialistID int64) *SchedulingPreferences {
	return &SchedulingPreferences{
		SpecialistID:        specialistID,
		DefaultBufferBefore: DefaultBufferMinutes,
		DefaultBufferAfter:  DefaultBufferMinutes,
		AdvanceBookingDays:  DefaultAdvanceBookingDays,
		MinBookingNotice:    DefaultMinBookingNotice,
		MinimumSlotDuration: 15,
		SlotIncrement:       DefaultSlotIncrementMinutes,
		LunchBreakDuration:  DefaultLunchBreakDuration,
	}
}

// LunchWindow returns the lunch break as an interval on date, if any
func (p *SchedulingPreferences) LunchWindow(date time.Time) (Interval, bool) {
	if p.LunchBreakStart == nil || p.LunchBreakDuration <= 0 {
		return Interval{}, false
	}
	return NewInterval(p.LunchBreakStart.On(date), time.Duration(p.LunchBreakDuration)*time.Minute), true
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p *SchedulingPreferences) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}
