package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SpecialistID int64     // ID специалиста
	ServiceID    *int64    // ID услуги; без нее берется самая короткая услуга специалиста
	Date         time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	SpecialistID    int64     // ID специалиста
	ServiceID       *int64    // ID услуги
	DurationMinutes int       // Длительность каждого слота
	Slots           []Slot    // Слоты по возрастанию начала
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время окончания слота
}
