package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	// LockSpecialistDay сериализует бронирования специалиста на дату до конца транзакции
	LockSpecialistDay(ctx context.Context, specialistID int64, date time.Time) error
}

// CatalogRepository интерфейс каталога специалистов и услуг
type CatalogRepository interface {
	GetSpecialist(ctx context.Context, id int64) (*domain.Specialist, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// PreferencesRepository интерфейс репозитория настроек расписания
type PreferencesRepository interface {
	GetPreferences(ctx context.Context, specialistID int64) (*domain.SchedulingPreferences, error)
}

// ConsumerRepository интерфейс репозитория клиентов
type ConsumerRepository interface {
	FindByNormalizedContact(ctx context.Context, email, phone string) (*domain.Consumer, error)
	Create(ctx context.Context, consumer *domain.Consumer) (*domain.Consumer, error)
}

// WindowSource источник окон доступности на дату
type WindowSource interface {
	Windows(ctx context.Context, specialistID int64, date time.Time) ([]domain.AvailabilityWindow, error)
}

// ConflictChecker проверка пересечения с событиями специалиста с учетом буферов
type ConflictChecker interface {
	HasConflict(ctx context.Context, specialistID int64, proposed domain.Interval, excludeEventID *int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingCreated()
	IncBookingRejected(reason string)
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
