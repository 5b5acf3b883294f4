package update_event

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// validateRequest валидирует запрос
func validateRequest(req *Request) error {
	if req.EventID <= 0 {
		return fmt.Errorf("%w: eventID must be positive", ErrInvalidInput)
	}

	p := &req.Patch
	if p.IsEmpty() {
		return ErrEmptyPatch
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" || len(title) > domain.MaxTitleLength {
			return fmt.Errorf("%w: title must be 1..%d characters", ErrInvalidInput, domain.MaxTitleLength)
		}
		p.Title = &title
	}
	if p.EventType != nil && !p.EventType.IsValid() {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, *p.EventType)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *p.Priority)
	}
	if p.Visibility != nil && !p.Visibility.IsValid() {
		return fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, *p.Visibility)
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *p.Status)
	}
	if !bufferInRange(p.BufferBefore) || !bufferInRange(p.BufferAfter) {
		return fmt.Errorf("%w: buffers must be within 0..%d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
	}
	if p.MaxBookings != nil && *p.MaxBookings <= 0 {
		return fmt.Errorf("%w: maxBookings must be positive", ErrInvalidInput)
	}

	return nil
}

func bufferInRange(v *int) bool {
	return v == nil || (*v >= 0 && *v <= domain.MaxBufferMinutes)
}
