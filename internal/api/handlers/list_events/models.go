package list_events

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	listEvents "github.com/m04kA/SMC-CalendarService/internal/usecase/list_events"
)

// EventResponse HTTP модель события календаря
type EventResponse struct {
	ID           int64   `json:"id"`
	SpecialistID int64   `json:"specialistId"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Location     *string `json:"location,omitempty"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	IsAllDay     bool    `json:"isAllDay"`
	Timezone     string  `json:"timezone"`
	EventType    string  `json:"eventType"`
	Category     *string `json:"category,omitempty"`
	Priority     string  `json:"priority"`
	Color        *string `json:"color,omitempty"`
	Visibility   string  `json:"visibility"`
	IsBookable   bool    `json:"isBookable"`
	MaxBookings  *int    `json:"maxBookings,omitempty"`
	BufferBefore int     `json:"bufferBefore"`
	BufferAfter  int     `json:"bufferAfter"`
	SeriesID     *string `json:"seriesId,omitempty"`
	IsRecurring  bool    `json:"isRecurring"`
	Status       string  `json:"status"`
}

// EventListResponse HTTP response model
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// ToUseCaseRequest создает запрос use case из query параметров.
// start/end принимают дату ("2025-01-06", end включительно) или момент времени.
func ToUseCaseRequest(specialistID int64, r *http.Request) (*listEvents.Request, error) {
	query := r.URL.Query()

	from, err := parseBound(query.Get("start"), false)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	to, err := parseBound(query.Get("end"), true)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	req := &listEvents.Request{
		SpecialistID: specialistID,
		From:         from,
		To:           to,
		Categories:   handlers.QueryList(r, "categories"),
	}

	if v := query.Get("visibility"); v != "" {
		visibility := domain.Visibility(v)
		req.Visibility = &visibility
	}
	for _, t := range handlers.QueryList(r, "types") {
		req.Types = append(req.Types, domain.EventType(t))
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listEvents.Response) *EventListResponse {
	out := &EventListResponse{Events: make([]EventResponse, 0, len(resp.Events))}
	for _, e := range resp.Events {
		out.Events = append(out.Events, FromDomainEvent(e))
	}
	return out
}

// FromDomainEvent конвертирует domain модель в HTTP модель
func FromDomainEvent(e *domain.CalendarEvent) EventResponse {
	resp := EventResponse{
		ID:           e.ID,
		SpecialistID: e.SpecialistID,
		Title:        e.Title,
		Description:  e.Description,
		Location:     e.Location,
		Start:        handlers.FormatDateTime(e.Start),
		End:          handlers.FormatDateTime(e.End),
		IsAllDay:     e.IsAllDay,
		Timezone:     e.Timezone,
		EventType:    string(e.EventType),
		Category:     e.Category,
		Priority:     string(e.Priority),
		Color:        e.Color,
		Visibility:   string(e.Visibility),
		IsBookable:   e.IsBookable,
		MaxBookings:  e.MaxBookings,
		BufferBefore: e.BufferBefore,
		BufferAfter:  e.BufferAfter,
		IsRecurring:  e.InSeries(),
		Status:       string(e.Status),
	}
	if e.SeriesID.Valid {
		s := e.SeriesID.UUID.String()
		resp.SeriesID = &s
	}
	return resp
}

func parseBound(s string, isEnd bool) (time.Time, error) {
	if date, err := handlers.ParseDate(s); err == nil {
		if isEnd {
			return date.AddDate(0, 0, 1), nil
		}
		return date, nil
	}
	return handlers.ParseDateTime(s)
}
