package create_event

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	createEvent "github.com/m04kA/SMC-CalendarService/internal/usecase/create_event"
)

// CreateEventRequest HTTP request model
type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Start       string  `json:"start"` // "2025-01-06T09:00"
	End         string  `json:"end"`
	IsAllDay    bool    `json:"isAllDay"`
	Timezone    string  `json:"timezone,omitempty"`

	EventType  string  `json:"eventType,omitempty"`
	Category   *string `json:"category,omitempty"`
	Priority   string  `json:"priority,omitempty"`
	Color      *string `json:"color,omitempty"`
	Visibility string  `json:"visibility,omitempty"`
	Status     string  `json:"status,omitempty"`

	IsBookable   *bool `json:"isBookable,omitempty"` // по умолчанию true
	MaxBookings  *int  `json:"maxBookings,omitempty"`
	BufferBefore int   `json:"bufferBefore"`
	BufferAfter  int   `json:"bufferAfter"`

	RecurrenceRule *string `json:"recurrenceRule,omitempty"` // "FREQ=WEEKLY;BYDAY=MO,WE;COUNT=5"
}

// CreateEventResponse HTTP response model
type CreateEventResponse struct {
	ID                 int64   `json:"id"`
	SeriesID           *string `json:"seriesId,omitempty"`
	OccurrencesCreated int     `json:"occurrencesCreated"`
	OccurrencesSkipped int     `json:"occurrencesSkipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateEventRequest) ToUseCaseRequest(specialistID int64) (*createEvent.Request, error) {
	start, err := handlers.ParseDateTime(r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := handlers.ParseDateTime(r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	isBookable := true
	if r.IsBookable != nil {
		isBookable = *r.IsBookable
	}

	return &createEvent.Request{
		SpecialistID:   specialistID,
		Title:          r.Title,
		Description:    r.Description,
		Location:       r.Location,
		Start:          start,
		End:            end,
		IsAllDay:       r.IsAllDay,
		Timezone:       r.Timezone,
		EventType:      domain.EventType(r.EventType),
		Category:       r.Category,
		Priority:       domain.Priority(r.Priority),
		Color:          r.Color,
		Visibility:     domain.Visibility(r.Visibility),
		Status:         domain.EventStatus(r.Status),
		IsBookable:     isBookable,
		MaxBookings:    r.MaxBookings,
		BufferBefore:   r.BufferBefore,
		BufferAfter:    r.BufferAfter,
		RecurrenceRule: r.RecurrenceRule,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createEvent.Response) *CreateEventResponse {
	out := &CreateEventResponse{
		ID:                 resp.ID,
		OccurrencesCreated: resp.OccurrencesCreated,
		OccurrencesSkipped: resp.OccurrencesSkipped,
	}
	if resp.SeriesID != nil {
		s := resp.SeriesID.String()
		out.SeriesID = &s
	}
	return out
}
