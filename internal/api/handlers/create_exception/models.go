package create_exception

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	createException "github.com/m04kA/SMC-CalendarService/internal/usecase/create_exception"
)

// CreateExceptionRequest HTTP request model
type CreateExceptionRequest struct {
	Date           *string `json:"date,omitempty"` // дата повторения серии "2025-01-08"
	Type           string  `json:"type"`           // cancelled | modified | moved
	NewStart       *string `json:"newStart,omitempty"`
	NewEnd         *string `json:"newEnd,omitempty"`
	NewTitle       *string `json:"newTitle,omitempty"`
	NewDescription *string `json:"newDescription,omitempty"`
}

// ExceptionResponse HTTP response model
type ExceptionResponse struct {
	ID             int64   `json:"id"`
	EventID        int64   `json:"eventId"`
	ExceptionDate  string  `json:"exceptionDate"`
	Type           string  `json:"type"`
	NewStart       *string `json:"newStart,omitempty"`
	NewEnd         *string `json:"newEnd,omitempty"`
	NewTitle       *string `json:"newTitle,omitempty"`
	NewDescription *string `json:"newDescription,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateExceptionRequest) ToUseCaseRequest(eventID int64) (*createException.Request, error) {
	req := &createException.Request{
		EventID:        eventID,
		Type:           domain.ExceptionType(r.Type),
		NewTitle:       r.NewTitle,
		NewDescription: r.NewDescription,
	}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.Date = &date
	}

	var err error
	if req.NewStart, err = parseOptional(r.NewStart); err != nil {
		return nil, fmt.Errorf("newStart: %w", err)
	}
	if req.NewEnd, err = parseOptional(r.NewEnd); err != nil {
		return nil, fmt.Errorf("newEnd: %w", err)
	}

	return req, nil
}

// FromDomainException конвертирует domain модель в HTTP response
func FromDomainException(exc *domain.EventException) *ExceptionResponse {
	resp := &ExceptionResponse{
		ID:             exc.ID,
		EventID:        exc.EventID,
		ExceptionDate:  exc.ExceptionDate.Format(domain.DateFormat),
		Type:           string(exc.Type),
		NewTitle:       exc.NewTitle,
		NewDescription: exc.NewDescription,
	}
	if exc.NewStart != nil {
		s := handlers.FormatDateTime(*exc.NewStart)
		resp.NewStart = &s
	}
	if exc.NewEnd != nil {
		s := handlers.FormatDateTime(*exc.NewEnd)
		resp.NewEnd = &s
	}
	return resp
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
