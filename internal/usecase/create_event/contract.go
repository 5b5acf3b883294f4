package create_event

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	Create(ctx context.Context, e *domain.CalendarEvent) (*domain.CalendarEvent, error)
	CreateBatch(ctx context.Context, events []*domain.CalendarEvent) error
}

// SpecialistRepository интерфейс каталога специалистов
type SpecialistRepository interface {
	GetSpecialist(ctx context.Context, id int64) (*domain.Specialist, error)
}

// ConflictSource загружает события, с которыми может пересечься интервал
type ConflictSource interface {
	Candidates(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.CalendarEvent, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики генерации повторений
type Metrics interface {
	AddOccurrences(generated, skipped int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
