package preferences

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/preferences/models"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// applyPreferences применяет изменения к текущим настройкам и валидирует результат
func applyPreferences(prefs *domain.SchedulingPreferences, req *models.UpdatePreferencesRequest) error {
	if req.DefaultBufferBefore != nil {
		prefs.DefaultBufferBefore = *req.DefaultBufferBefore
	}
	if req.DefaultBufferAfter != nil {
		prefs.DefaultBufferAfter = *req.DefaultBufferAfter
	}
	if req.AdvanceBookingDays != nil {
		prefs.AdvanceBookingDays = *req.AdvanceBookingDays
	}
	if req.MinBookingNotice != nil {
		prefs.MinBookingNotice = *req.MinBookingNotice
	}
	if req.MaxDailyBookings != nil {
		prefs.MaxDailyBookings = req.MaxDailyBookings
	}
	if req.MaxWeeklyBookings != nil {
		prefs.MaxWeeklyBookings = req.MaxWeeklyBookings
	}
	if req.MinimumSlotDuration != nil {
		prefs.MinimumSlotDuration = *req.MinimumSlotDuration
	}
	if req.SlotIncrement != nil {
		prefs.SlotIncrement = *req.SlotIncrement
	}
	if req.LunchBreakDuration != nil {
		prefs.LunchBreakDuration = *req.LunchBreakDuration
	}
	if req.LunchBreakStart != nil {
		if *req.LunchBreakStart == "" {
			prefs.LunchBreakStart = nil
		} else {
			start, err := types.NewTimeStringFromString(*req.LunchBreakStart)
			if err != nil {
				return fmt.Errorf("%w: lunchBreakStart: %v", ErrInvalidInput, err)
			}
			prefs.LunchBreakStart = &start
		}
	}

	return validatePreferences(prefs)
}

// validatePreferences валидирует параметры планирования
func validatePreferences(p *domain.SchedulingPreferences) error {
	if p.DefaultBufferBefore < 0 || p.DefaultBufferBefore > domain.MaxBufferMinutes ||
		p.DefaultBufferAfter < 0 || p.DefaultBufferAfter > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffers must be between 0 and %d", ErrInvalidInput, domain.MaxBufferMinutes)
	}

	if p.SlotIncrement <= 0 || p.SlotIncrement > domain.MaxSlotIncrement {
		return fmt.Errorf("%w: slotIncrement must be between 1 and %d", ErrInvalidInput, domain.MaxSlotIncrement)
	}

	if p.MinimumSlotDuration <= 0 {
		return fmt.Errorf("%w: minimumSlotDuration must be positive", ErrInvalidInput)
	}

	if p.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: advanceBookingDays must not be negative", ErrInvalidInput)
	}

	if p.MinBookingNotice < 0 {
		return fmt.Errorf("%w: minBookingNotice must not be negative", ErrInvalidInput)
	}

	if p.MaxDailyBookings != nil && *p.MaxDailyBookings <= 0 {
		return fmt.Errorf("%w: maxDailyBookings must be positive", ErrInvalidInput)
	}

	if p.MaxWeeklyBookings != nil && *p.MaxWeeklyBookings <= 0 {
		return fmt.Errorf("%w: maxWeeklyBookings must be positive", ErrInvalidInput)
	}

	if p.LunchBreakDuration < 0 {
		return fmt.Errorf("%w: lunchBreakDuration must not be negative", ErrInvalidInput)
	}

	return nil
}

// toDomainWorkingHours валидирует набор рабочих часов и собирает доменные модели
func toDomainWorkingHours(specialistID int64, req *models.ReplaceWorkingHoursRequest) ([]*domain.WorkingHours, error) {
	seen := make(map[string]bool, len(req.Days))
	hours := make([]*domain.WorkingHours, 0, len(req.Days))

	for _, day := range req.Days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6, got %d", ErrInvalidInput, day.DayOfWeek)
		}

		effective, err := models.ParseEffectiveDate(day.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("%w: effectiveDate: %v", ErrInvalidInput, err)
		}

		// Один набор на день недели и дату вступления в силу
		key := fmt.Sprintf("%d", day.DayOfWeek)
		if effective != nil {
			key += "@" + effective.Format(domain.DateFormat)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate working hours for day %d", ErrInvalidInput, day.DayOfWeek)
		}
		seen[key] = true

		ranges, err := toTimeRanges(day.TimeRanges)
		if err != nil {
			return nil, err
		}

		isWorkingDay := len(ranges) > 0
		if day.IsWorkingDay != nil {
			isWorkingDay = *day.IsWorkingDay
		}
		if isWorkingDay && len(ranges) == 0 {
			return nil, fmt.Errorf("%w: working day %d has no time ranges", ErrInvalidInput, day.DayOfWeek)
		}

		if day.BreakDuration < 0 {
			return nil, fmt.Errorf("%w: breakDuration must not be negative", ErrInvalidInput)
		}

		wh := &domain.WorkingHours{
			SpecialistID:  specialistID,
			DayOfWeek:     day.DayOfWeek,
			TimeRanges:    ranges,
			IsWorkingDay:  isWorkingDay,
			BreakDuration: day.BreakDuration,
			IsActive:      true,
			EffectiveDate: effective,
		}
		if day.BreakStart != nil && *day.BreakStart != "" {
			start, err := types.NewTimeStringFromString(*day.BreakStart)
			if err != nil {
				return nil, fmt.Errorf("%w: breakStart: %v", ErrInvalidInput, err)
			}
			wh.BreakStart = &start
		}

		hours = append(hours, wh)
	}

	return hours, nil
}

// toTimeRanges парсит диапазоны и проверяет, что они не пересекаются
func toTimeRanges(dtos []models.TimeRangeDTO) ([]domain.TimeRange, error) {
	ranges := make([]domain.TimeRange, 0, len(dtos))
	for _, dto := range dtos {
		start, err := types.NewTimeStringFromString(dto.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: range start: %v", ErrInvalidInput, err)
		}
		end, err := types.NewTimeStringFromString(dto.End)
		if err != nil {
			return nil, fmt.Errorf("%w: range end: %v", ErrInvalidInput, err)
		}
		r := domain.TimeRange{Start: start, End: end}
		if !r.IsValid() {
			return nil, fmt.Errorf("%w: range %s-%s is empty or reversed", ErrInvalidInput, start, end)
		}
		for _, other := range ranges {
			if r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End) {
				return nil, fmt.Errorf("%w: ranges %s-%s and %s-%s overlap",
					ErrInvalidInput, other.Start, other.End, r.Start, r.End)
			}
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}
