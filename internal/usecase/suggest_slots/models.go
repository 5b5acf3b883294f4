package suggest_slots

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса умных подсказок
type Request struct {
	SpecialistID    int64
	From            time.Time
	To              time.Time
	DurationMinutes int  // 0 = длительность по умолчанию
	ExcludeWeekends bool // Пропускать субботу и воскресенье
	Limit           int  // 0 = лимит по умолчанию
}

// Response подсказки по убыванию оценки
type Response struct {
	SpecialistID int64
	Suggestions  []domain.Suggestion
}

// Settings параметры поиска из конфигурации сервиса
type Settings struct {
	DefaultDurationMinutes int
	DefaultStepMinutes     int
	Limit                  int
	NearbyWindowMinutes    int
}
