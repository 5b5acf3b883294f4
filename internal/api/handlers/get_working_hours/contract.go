package get_working_hours

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/service/preferences/models"
)

type PreferencesService interface {
	ListWorkingHours(ctx context.Context, specialistID int64) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
