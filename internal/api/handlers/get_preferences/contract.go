package get_preferences

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/service/preferences/models"
)

type PreferencesService interface {
	Get(ctx context.Context, specialistID int64) (*models.PreferencesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
