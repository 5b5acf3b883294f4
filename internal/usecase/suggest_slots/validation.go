package suggest_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.To.After(req.From) {
		return ErrInvalidTimeRange
	}
	if req.To.Sub(req.From) > domain.MaxSuggestionRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, domain.MaxSuggestionRangeDays)
	}
	if req.DurationMinutes < 0 || req.DurationMinutes > 24*60 {
		return fmt.Errorf("%w: duration must be within 0..1440 minutes", ErrInvalidInput)
	}
	if req.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	return nil
}

// workingHoursByDay активные рабочие часы по дню недели.
// Из нескольких записей на один день побеждает запись с более поздней датой вступления в силу.
func workingHoursByDay(hours []*domain.WorkingHours, asOf time.Time) map[int]*domain.WorkingHours {
	byDay := make(map[int]*domain.WorkingHours, 7)
	for _, wh := range hours {
		if !wh.IsActive {
			continue
		}
		if wh.EffectiveDate != nil && wh.EffectiveDate.After(asOf) {
			continue
		}
		prev, ok := byDay[wh.DayOfWeek]
		if !ok || effectiveAfter(wh, prev) {
			byDay[wh.DayOfWeek] = wh
		}
	}
	return byDay
}

func effectiveAfter(a, b *domain.WorkingHours) bool {
	if a.EffectiveDate == nil {
		return false
	}
	return b.EffectiveDate == nil || a.EffectiveDate.After(*b.EffectiveDate)
}
