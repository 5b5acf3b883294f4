package preferences

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

var preferencesColumns = []string{
	"id",
	"specialist_id",
	"default_buffer_before",
	"default_buffer_after",
	"advance_booking_days",
	"min_booking_notice",
	"max_daily_bookings",
	"max_weekly_bookings",
	"minimum_slot_duration",
	"slot_increment",
	"lunch_break_start",
	"lunch_break_duration",
	"created_at",
	"updated_at",
}

var workingHoursColumns = []string{
	"id",
	"specialist_id",
	"day_of_week",
	"time_ranges",
	"is_working_day",
	"break_start",
	"break_duration",
	"is_active",
	"effective_date",
}

// Repository репозиторий рабочих часов и настроек планирования специалиста
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPreferences получает настройки специалиста
func (r *Repository) GetPreferences(ctx context.Context, specialistID int64) (*domain.SchedulingPreferences, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(preferencesColumns...).
		From("scheduling_preferences").
		Where(squirrel.Eq{"specialist_id": specialistID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPreferences - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPreferences - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []preferencesRow
	if err := sqlx.StructScan(rows, &result); err != nil {
		return nil, fmt.Errorf("%w: GetPreferences - struct scan: %w", ErrScanRow, err)
	}
	if len(result) == 0 {
		return nil, ErrPreferencesNotFound
	}

	return result[0].toDomain(), nil
}

// UpsertPreferences создает или полностью перезаписывает настройки специалиста
func (r *Repository) UpsertPreferences(ctx context.Context, prefs *domain.SchedulingPreferences) (*domain.SchedulingPreferences, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduling_preferences").
		Columns(
			"specialist_id",
			"default_buffer_before",
			"default_buffer_after",
			"advance_booking_days",
			"min_booking_notice",
			"max_daily_bookings",
			"max_weekly_bookings",
			"minimum_slot_duration",
			"slot_increment",
			"lunch_break_start",
			"lunch_break_duration",
		).
		Values(
			prefs.SpecialistID,
			prefs.DefaultBufferBefore,
			prefs.DefaultBufferAfter,
			prefs.AdvanceBookingDays,
			prefs.MinBookingNotice,
			prefs.MaxDailyBookings,
			prefs.MaxWeeklyBookings,
			prefs.MinimumSlotDuration,
			prefs.SlotIncrement,
			prefs.LunchBreakStart,
			prefs.LunchBreakDuration,
		).
		Suffix(`ON CONFLICT (specialist_id) DO UPDATE SET
			default_buffer_before = EXCLUDED.default_buffer_before,
			default_buffer_after = EXCLUDED.default_buffer_after,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice = EXCLUDED.min_booking_notice,
			max_daily_bookings = EXCLUDED.max_daily_bookings,
			max_weekly_bookings = EXCLUDED.max_weekly_bookings,
			minimum_slot_duration = EXCLUDED.minimum_slot_duration,
			slot_increment = EXCLUDED.slot_increment,
			lunch_break_start = EXCLUDED.lunch_break_start,
			lunch_break_duration = EXCLUDED.lunch_break_duration,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertPreferences - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&prefs.ID, &prefs.CreatedAt, &prefs.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertPreferences - execute insert: %w", ErrExecQuery, err)
	}

	return prefs, nil
}

// ListWorkingHours получает активные рабочие часы специалиста, упорядоченные по дню недели
func (r *Repository) ListWorkingHours(ctx context.Context, specialistID int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("working_hours").
		Where(squirrel.Eq{"specialist_id": specialistID, "is_active": true}).
		OrderBy("day_of_week ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var scanned []workingHoursRow
	if err := sqlx.StructScan(rows, &scanned); err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - struct scan: %w", ErrScanRow, err)
	}

	result := make([]*domain.WorkingHours, 0, len(scanned))
	for _, row := range scanned {
		wh, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: ListWorkingHours - decode time_ranges: %w", ErrEncodeRanges, err)
		}
		result = append(result, wh)
	}

	return result, nil
}

// ReplaceWorkingHours деактивирует текущие рабочие часы и сохраняет новый набор.
// Должен вызываться внутри транзакции.
func (r *Repository) ReplaceWorkingHours(ctx context.Context, specialistID int64, hours []*domain.WorkingHours) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// 1. Деактивируем текущий набор
	query, args, err := psqlbuilder.Update("working_hours").
		Set("is_active", false).
		Where(squirrel.Eq{"specialist_id": specialistID, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - build update query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - execute update: %w", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return hours, nil
	}

	// 2. Вставляем новый набор одним запросом
	insertBuilder := psqlbuilder.Insert("working_hours").
		Columns(
			"specialist_id",
			"day_of_week",
			"time_ranges",
			"is_working_day",
			"break_start",
			"break_duration",
			"is_active",
			"effective_date",
		)
	for _, wh := range hours {
		ranges, err := json.Marshal(wh.TimeRanges)
		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceWorkingHours - encode time_ranges: %w", ErrEncodeRanges, err)
		}
		insertBuilder = insertBuilder.Values(
			specialistID,
			wh.DayOfWeek,
			string(ranges),
			wh.IsWorkingDay,
			wh.BreakStart,
			wh.BreakDuration,
			true,
			wh.EffectiveDate,
		)
	}

	query, args, err = insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	// PostgreSQL возвращает RETURNING в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(hours) {
			break
		}
		if err := rows.Scan(&hours[i].ID); err != nil {
			return nil, fmt.Errorf("%w: ReplaceWorkingHours - scan id: %w", ErrScanRow, err)
		}
		hours[i].SpecialistID = specialistID
		hours[i].IsActive = true
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - rows error: %w", ErrScanRow, err)
	}

	return hours, nil
}
