package create_availability

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateSlot(ctx context.Context, specialistID int64, req *models.CreateSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
