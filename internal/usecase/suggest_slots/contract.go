package suggest_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// SpecialistRepository интерфейс каталога специалистов
type SpecialistRepository interface {
	GetSpecialist(ctx context.Context, id int64) (*domain.Specialist, error)
}

// PreferencesRepository интерфейс репозитория настроек расписания
type PreferencesRepository interface {
	GetPreferences(ctx context.Context, specialistID int64) (*domain.SchedulingPreferences, error)
	ListWorkingHours(ctx context.Context, specialistID int64) ([]*domain.WorkingHours, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// EventSource события специалиста с примененными исключениями
type EventSource interface {
	Candidates(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.CalendarEvent, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
