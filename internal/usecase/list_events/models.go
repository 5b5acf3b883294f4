package list_events

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса календарного представления
type Request struct {
	SpecialistID int64
	From         time.Time
	To           time.Time
	Visibility   *domain.Visibility // nil = любая
	Types        []domain.EventType // пусто = любые
	Categories   []string           // пусто = любые
}

// Response события периода с примененными исключениями, отсортированные по началу
type Response struct {
	Events []*domain.CalendarEvent
}
