package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-CalendarService/internal/usecase/get_available_slots"
)

// GetAvailableSlotsUseCase выдает свободные слоты дня длиной в услугу,
// собранные из событий доступности и слотов доступности специалиста
type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

var _ GetAvailableSlotsUseCase = (*getAvailableSlots.UseCase)(nil)

// Logger логирует обработку GET /specialists/{specialistId}/slots
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
