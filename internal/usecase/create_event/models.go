package create_event

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса на создание события
type Request struct {
	SpecialistID int64
	Title        string
	Description  *string
	Location     *string
	Start        time.Time
	End          time.Time
	IsAllDay     bool
	Timezone     string // метка для отображения, по умолчанию "UTC"

	// Пустые значения заменяются на availability, normal, public и confirmed
	EventType  domain.EventType
	Category   *string
	Priority   domain.Priority
	Color      *string
	Visibility domain.Visibility
	Status     domain.EventStatus

	IsBookable   bool
	MaxBookings  *int
	BufferBefore int
	BufferAfter  int

	// RecurrenceRule правило в формате RFC 5545 ("FREQ=WEEKLY;BYDAY=MO,WE;COUNT=5")
	RecurrenceRule *string
}

// Response модель ответа
type Response struct {
	ID                 int64      // ID созданного (базового) события
	SeriesID           *uuid.UUID // ID серии, если событие повторяется
	OccurrencesCreated int        // Количество материализованных повторений
	OccurrencesSkipped int        // Повторения, отброшенные из-за конфликтов
}
