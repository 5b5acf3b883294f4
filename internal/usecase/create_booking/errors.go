package create_booking

import "errors"

var (
	// ErrSpecialistNotFound возвращается, когда специалист не найден
	ErrSpecialistNotFound = errors.New("create_booking: specialist not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotOffered возвращается, когда услуга принадлежит другому специалисту
	ErrServiceNotOffered = errors.New("create_booking: service is not offered by this specialist")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда время начала уже прошло
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrOutsideAvailability возвращается, когда интервал не лежит целиком в окне доступности
	ErrOutsideAvailability = errors.New("create_booking: requested time is outside availability")

	// ErrSlotNotAvailable возвращается, когда интервал пересекает бронирование или событие
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Причины отказа для метрики bookings_rejected_total
const (
	rejectInvalidDate         = "invalid_date"
	rejectOutsideAvailability = "outside_availability"
	rejectBookingOverlap      = "booking_overlap"
	rejectEventConflict       = "event_conflict"
)
