package update_event

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	updateEvent "github.com/m04kA/SMC-CalendarService/internal/usecase/update_event"
)

// UpdateEventRequest HTTP request model; отсутствующие поля не меняются
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Start       *string `json:"start,omitempty"`
	End         *string `json:"end,omitempty"`

	EventType  *string `json:"eventType,omitempty"`
	Category   *string `json:"category,omitempty"`
	Priority   *string `json:"priority,omitempty"`
	Color      *string `json:"color,omitempty"`
	Visibility *string `json:"visibility,omitempty"`
	Status     *string `json:"status,omitempty"`

	IsBookable   *bool `json:"isBookable,omitempty"`
	MaxBookings  *int  `json:"maxBookings,omitempty"`
	BufferBefore *int  `json:"bufferBefore,omitempty"`
	BufferAfter  *int  `json:"bufferAfter,omitempty"`
}

// UpdateEventResponse HTTP response model
type UpdateEventResponse struct {
	EventID       int64   `json:"eventId"`
	UpdatedRows   int     `json:"updatedRows"`
	ExceptionID   *int64  `json:"exceptionId,omitempty"`
	ExceptionType *string `json:"exceptionType,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateEventRequest) ToUseCaseRequest(eventID int64, applyToSeries bool) (*updateEvent.Request, error) {
	start, err := parseOptional(r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := parseOptional(r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	patch := updateEvent.Patch{
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		Start:        start,
		End:          end,
		Category:     r.Category,
		Color:        r.Color,
		IsBookable:   r.IsBookable,
		MaxBookings:  r.MaxBookings,
		BufferBefore: r.BufferBefore,
		BufferAfter:  r.BufferAfter,
	}
	if r.EventType != nil {
		t := domain.EventType(*r.EventType)
		patch.EventType = &t
	}
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Visibility != nil {
		v := domain.Visibility(*r.Visibility)
		patch.Visibility = &v
	}
	if r.Status != nil {
		s := domain.EventStatus(*r.Status)
		patch.Status = &s
	}

	return &updateEvent.Request{
		EventID:       eventID,
		ApplyToSeries: applyToSeries,
		Patch:         patch,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateEvent.Response) *UpdateEventResponse {
	out := &UpdateEventResponse{
		EventID:     resp.EventID,
		UpdatedRows: resp.UpdatedRows,
		ExceptionID: resp.ExceptionID,
	}
	if resp.ExceptionType != nil {
		t := string(*resp.ExceptionType)
		out.ExceptionType = &t
	}
	return out
}

func parseOptional(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := handlers.ParseDateTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
