package create_event

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// validateRequest валидирует запрос и проставляет значения по умолчанию
func validateRequest(req *Request) error {
	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.End.After(req.Start) {
		return ErrInvalidTimeRange
	}

	if req.EventType == "" {
		req.EventType = domain.EventTypeAvailability
	}
	if !req.EventType.IsValid() {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, req.EventType)
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}
	if !req.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, req.Priority)
	}
	if req.Visibility == "" {
		req.Visibility = domain.VisibilityPublic
	}
	if !req.Visibility.IsValid() {
		return fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, req.Visibility)
	}
	if req.Status == "" {
		req.Status = domain.EventStatusConfirmed
	}
	if !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	if req.BufferBefore < 0 || req.BufferBefore > domain.MaxBufferMinutes ||
		req.BufferAfter < 0 || req.BufferAfter > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffers must be within 0..%d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
	}
	if req.MaxBookings != nil && *req.MaxBookings <= 0 {
		return fmt.Errorf("%w: maxBookings must be positive", ErrInvalidInput)
	}

	return nil
}
