package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	createBooking "github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SpecialistID int64   `json:"specialistId"`
	ServiceID    int64   `json:"serviceId"`
	Date         string  `json:"date"`      // "2025-10-15"
	StartTime    string  `json:"startTime"` // "10:00"
	ClientName   string  `json:"clientName"`
	ClientEmail  *string `json:"clientEmail,omitempty"`
	ClientPhone  *string `json:"clientPhone,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	SpecialistID    int64   `json:"specialistId"`
	ServiceID       int64   `json:"serviceId"`
	ConsumerID      int64   `json:"consumerId"`
	ConsumerCreated bool    `json:"consumerCreated"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ClientName      string  `json:"clientName"`
	ClientEmail     *string `json:"clientEmail,omitempty"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		SpecialistID: r.SpecialistID,
		ServiceID:    r.ServiceID,
		Date:         date,
		StartTime:    startTime,
		Contact: domain.ContactInfo{
			Name:  r.ClientName,
			Email: r.ClientEmail,
			Phone: r.ClientPhone,
		},
		Notes: r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		SpecialistID:    resp.SpecialistID,
		ServiceID:       resp.ServiceID,
		ConsumerID:      resp.ConsumerID,
		ConsumerCreated: resp.ConsumerCreated,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ClientName:      resp.ClientName,
		ClientEmail:     resp.ClientEmail,
		ClientPhone:     resp.ClientPhone,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
