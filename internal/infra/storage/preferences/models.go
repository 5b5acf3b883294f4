package preferences

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// preferencesRow строка scheduling_preferences для sqlx.StructScan
type preferencesRow struct {
	ID                  int64             `db:"id"`
	SpecialistID        int64             `db:"specialist_id"`
	DefaultBufferBefore int               `db:"default_buffer_before"`
	DefaultBufferAfter  int               `db:"default_buffer_after"`
	AdvanceBookingDays  int               `db:"advance_booking_days"`
	MinBookingNotice    int               `db:"min_booking_notice"`
	MaxDailyBookings    sql.NullInt64     `db:"max_daily_bookings"`
	MaxWeeklyBookings   sql.NullInt64     `db:"max_weekly_bookings"`
	MinimumSlotDuration int               `db:"minimum_slot_duration"`
	SlotIncrement       int               `db:"slot_increment"`
	LunchBreakStart     *types.TimeString `db:"lunch_break_start"`
	LunchBreakDuration  int               `db:"lunch_break_duration"`
	CreatedAt           time.Time         `db:"created_at"`
	UpdatedAt           time.Time         `db:"updated_at"`
}

func (r preferencesRow) toDomain() *domain.SchedulingPreferences {
	return &domain.SchedulingPreferences{
		ID:                  r.ID,
		SpecialistID:        r.SpecialistID,
		DefaultBufferBefore: r.DefaultBufferBefore,
		DefaultBufferAfter:  r.DefaultBufferAfter,
		AdvanceBookingDays:  r.AdvanceBookingDays,
		MinBookingNotice:    r.MinBookingNotice,
		MaxDailyBookings:    nullIntPtr(r.MaxDailyBookings),
		MaxWeeklyBookings:   nullIntPtr(r.MaxWeeklyBookings),
		MinimumSlotDuration: r.MinimumSlotDuration,
		SlotIncrement:       r.SlotIncrement,
		LunchBreakStart:     r.LunchBreakStart,
		LunchBreakDuration:  r.LunchBreakDuration,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// workingHoursRow строка working_hours; time_ranges хранится в JSONB
type workingHoursRow struct {
	ID            int64             `db:"id"`
	SpecialistID  int64             `db:"specialist_id"`
	DayOfWeek     int               `db:"day_of_week"`
	TimeRanges    []byte            `db:"time_ranges"`
	IsWorkingDay  bool              `db:"is_working_day"`
	BreakStart    *types.TimeString `db:"break_start"`
	BreakDuration int               `db:"break_duration"`
	IsActive      bool              `db:"is_active"`
	EffectiveDate sql.NullTime      `db:"effective_date"`
}

func (r workingHoursRow) toDomain() (*domain.WorkingHours, error) {
	ranges := make([]domain.TimeRange, 0)
	if len(r.TimeRanges) > 0 {
		if err := json.Unmarshal(r.TimeRanges, &ranges); err != nil {
			return nil, err
		}
	}

	wh := &domain.WorkingHours{
		ID:            r.ID,
		SpecialistID:  r.SpecialistID,
		DayOfWeek:     r.DayOfWeek,
		TimeRanges:    ranges,
		IsWorkingDay:  r.IsWorkingDay,
		BreakStart:    r.BreakStart,
		BreakDuration: r.BreakDuration,
		IsActive:      r.IsActive,
	}
	if r.EffectiveDate.Valid {
		date := r.EffectiveDate.Time
		wh.EffectiveDate = &date
	}
	return wh, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
