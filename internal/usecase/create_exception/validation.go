package create_exception

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// validateRequest валидирует и нормализует запрос.
// Для cancelled замены отбрасываются.
func validateRequest(req *Request) error {
	if req.EventID <= 0 {
		return fmt.Errorf("%w: eventID must be positive", ErrInvalidInput)
	}
	if !req.Type.IsValid() {
		return fmt.Errorf("%w: unknown exception type %q", ErrInvalidInput, req.Type)
	}

	switch req.Type {
	case domain.ExceptionCancelled:
		req.NewStart, req.NewEnd, req.NewTitle, req.NewDescription = nil, nil, nil, nil
		return nil
	case domain.ExceptionMoved:
		if req.NewStart == nil || req.NewEnd == nil {
			return fmt.Errorf("%w: moved exception requires new start and end", ErrInvalidInput)
		}
	case domain.ExceptionModified:
		if req.NewStart == nil && req.NewEnd == nil && req.NewTitle == nil && req.NewDescription == nil {
			return fmt.Errorf("%w: modified exception requires at least one override", ErrInvalidInput)
		}
	}

	if req.NewTitle != nil {
		title := strings.TrimSpace(*req.NewTitle)
		if title == "" || len(title) > domain.MaxTitleLength {
			return fmt.Errorf("%w: title must be 1..%d characters", ErrInvalidInput, domain.MaxTitleLength)
		}
		req.NewTitle = &title
	}
	if req.NewStart != nil && req.NewEnd != nil && !req.NewEnd.After(*req.NewStart) {
		return ErrInvalidTimeRange
	}
	return nil
}
