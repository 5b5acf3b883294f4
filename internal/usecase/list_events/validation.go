package list_events

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// maxRangeDays ограничение на ширину календарного представления
const maxRangeDays = 366

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
	if req.To.Sub(req.From) > maxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidInput, maxRangeDays)
	}
	if req.Visibility != nil && !req.Visibility.IsValid() {
		return fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, *req.Visibility)
	}
	for _, t := range req.Types {
		if !t.IsValid() {
			return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, t)
		}
	}
	return nil
}

// matches применяет фильтры к событию после наложения исключений
func matches(e *domain.CalendarEvent, req *Request) bool {
	if req.Visibility != nil && e.Visibility != *req.Visibility {
		return false
	}
	if len(req.Types) > 0 && !containsType(req.Types, e.EventType) {
		return false
	}
	if len(req.Categories) > 0 && (e.Category == nil || !containsString(req.Categories, *e.Category)) {
		return false
	}
	return true
}

func containsType(list []domain.EventType, t domain.EventType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
