package list_bookings

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день; start/end задают период (даты включительно).
func ToServiceRequest(specialistID int64, statusStr, dateStr, startStr, endStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{SpecialistID: specialistID}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if dateStr != "" {
		if startStr != "" || endStr != "" {
			return nil, fmt.Errorf("date cannot be combined with start/end")
		}
		date, err := handlers.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
		return req, nil
	}

	if startStr != "" {
		start, err := handlers.ParseDate(startStr)
		if err != nil {
			return nil, fmt.Errorf("invalid start: %w", err)
		}
		req.StartDate = &start
	}

	if endStr != "" {
		end, err := handlers.ParseDate(endStr)
		if err != nil {
			return nil, fmt.Errorf("invalid end: %w", err)
		}
		req.EndDate = &end
	}

	return req, nil
}
