package update_event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CalendarEvent, error)
	ListBySeries(ctx context.Context, seriesID uuid.UUID) ([]*domain.CalendarEvent, error)
	Update(ctx context.Context, e *domain.CalendarEvent) error
}

// ExceptionRepository интерфейс репозитория исключений
type ExceptionRepository interface {
	GetByEventDate(ctx context.Context, eventID int64, date time.Time) (*domain.EventException, error)
	Upsert(ctx context.Context, exc *domain.EventException) (*domain.EventException, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
