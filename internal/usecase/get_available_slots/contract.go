package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// CatalogRepository интерфейс каталога специалистов и услуг
type CatalogRepository interface {
	GetSpecialist(ctx context.Context, id int64) (*domain.Specialist, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	// ShortestServiceDuration минимальная длительность услуги специалиста, 0 если услуг нет
	ShortestServiceDuration(ctx context.Context, specialistID int64) (int, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// WindowSource источник окон доступности на дату
type WindowSource interface {
	Windows(ctx context.Context, specialistID int64, date time.Time) ([]domain.AvailabilityWindow, error)
}

// ConflictSource загружает события, с которыми может пересечься интервал
type ConflictSource interface {
	Candidates(ctx context.Context, specialistID int64, window domain.Interval) ([]*domain.CalendarEvent, error)
}

// Metrics счетчик отданных слотов
type Metrics interface {
	AddSlotsListed(n int)
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
