package list_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListSlots(ctx context.Context, specialistID int64, from, to time.Time) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
