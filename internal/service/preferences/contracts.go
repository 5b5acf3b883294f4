package preferences

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// PreferencesRepository интерфейс репозитория настроек и рабочих часов
type PreferencesRepository interface {
	GetPreferences(ctx context.Context, specialistID int64) (*domain.SchedulingPreferences, error)
	UpsertPreferences(ctx context.Context, prefs *domain.SchedulingPreferences) (*domain.SchedulingPreferences, error)
	ListWorkingHours(ctx context.Context, specialistID int64) ([]*domain.WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, specialistID int64, hours []*domain.WorkingHours) ([]*domain.WorkingHours, error)
}

// SpecialistRepository проверка существования специалиста
type SpecialistRepository interface {
	GetSpecialist(ctx context.Context, id int64) (*domain.Specialist, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
