package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	SpecialistID int64              // ID специалиста
	ServiceID    int64              // ID услуги
	Date         time.Time          // Дата бронирования (без времени)
	StartTime    types.TimeString   // Время начала (например, "10:00")
	Contact      domain.ContactInfo // Контакты клиента
	Notes        *string            // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	SpecialistID    int64            // ID специалиста
	ServiceID       int64            // ID услуги
	ConsumerID      int64            // ID клиента (найденного или созданного)
	ConsumerCreated bool             // true, если клиент создан этим бронированием
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные
	ServiceName string  // Название услуги
	ClientName  string  // Имя клиента
	ClientEmail *string // Email клиента, как введен
	ClientPhone *string // Телефон клиента, как введен
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
