package create_exception

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса на создание исключения.
// Date выбирает повторение серии по его календарной дате; без Date
// исключение пишется для самого события EventID.
type Request struct {
	EventID int64
	Date    *time.Time
	Type    domain.ExceptionType

	NewStart       *time.Time
	NewEnd         *time.Time
	NewTitle       *string
	NewDescription *string
}

// Response модель ответа
type Response struct {
	Exception *domain.EventException
}
