package list_events

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	List(ctx context.Context, filter domain.EventsFilter) ([]*domain.CalendarEvent, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.CalendarEvent, error)
}

// ExceptionRepository интерфейс репозитория исключений
type ExceptionRepository interface {
	ListByEventIDs(ctx context.Context, eventIDs []int64) ([]*domain.EventException, error)
	ListInWindow(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.EventException, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
