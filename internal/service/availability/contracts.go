package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	ListByRange(ctx context.Context, specialistID int64, from, to time.Time, onlyAvailable bool) ([]*domain.AvailabilitySlot, error)
}

// EventSource события специалиста с примененными исключениями
// Реализуется conflict.Detector
type EventSource interface {
	Candidates(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.CalendarEvent, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
