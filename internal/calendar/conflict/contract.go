package conflict

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// EventRepository источник событий специалиста
type EventRepository interface {
	// ListOverlapping активные события специалиста, пересекающие окно
	ListOverlapping(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.CalendarEvent, error)
	// GetByIDs события по списку ID
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.CalendarEvent, error)
}

// ExceptionRepository источник исключений повторяющихся событий
type ExceptionRepository interface {
	// ListInWindow исключения событий специалиста, чья дата или новое время попадают в окно
	ListInWindow(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.EventException, error)
}
