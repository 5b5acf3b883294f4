package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
)

// CreateBookingUseCase бронирует услугу специалиста на дату и время.
// Клиент находится по нормализованному email или телефону либо создается.
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

var _ CreateBookingUseCase = (*createBooking.UseCase)(nil)

// Logger логирует обработку POST /bookings
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
