package update_event

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Patch изменяемые поля события; nil означает "не менять"
type Patch struct {
	Title       *string
	Description *string
	Location    *string
	Start       *time.Time
	End         *time.Time

	EventType  *domain.EventType
	Category   *string
	Priority   *domain.Priority
	Color      *string
	Visibility *domain.Visibility
	Status     *domain.EventStatus

	IsBookable   *bool
	MaxBookings  *int
	BufferBefore *int
	BufferAfter  *int
}

// IsEmpty true, если в патче нет изменений
func (p *Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Location == nil &&
		p.Start == nil && p.End == nil && p.EventType == nil && p.Category == nil &&
		p.Priority == nil && p.Color == nil && p.Visibility == nil && p.Status == nil &&
		p.IsBookable == nil && p.MaxBookings == nil && p.BufferBefore == nil && p.BufferAfter == nil
}

// touchesOccurrence true, если патч меняет поля, которые переопределяет исключение
func (p *Patch) touchesOccurrence() bool {
	return p.Title != nil || p.Description != nil || p.Start != nil || p.End != nil
}

// touchesRow true, если патч меняет поля, которые исключение не покрывает
func (p *Patch) touchesRow() bool {
	return p.Location != nil || p.EventType != nil || p.Category != nil || p.Priority != nil ||
		p.Color != nil || p.Visibility != nil || p.Status != nil || p.IsBookable != nil ||
		p.MaxBookings != nil || p.BufferBefore != nil || p.BufferAfter != nil
}

// Request модель запроса на изменение события
type Request struct {
	EventID       int64
	ApplyToSeries bool // true - изменить всю серию, false - только это событие
	Patch         Patch
}

// Response модель ответа
type Response struct {
	EventID       int64
	UpdatedRows   int                   // Количество измененных строк событий
	ExceptionID   *int64                // ID записанного исключения (правка одного повторения)
	ExceptionType *domain.ExceptionType // Тип записанного исключения
}
