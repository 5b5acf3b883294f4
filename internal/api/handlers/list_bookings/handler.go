package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidParams       = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/bookings
// Query params: status, date или start/end (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/bookings - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(specialistID,
		query.Get("status"), query.Get("date"), query.Get("start"), query.Get("end"))
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /specialists/{id}/bookings - Invalid filter: specialist_id=%d, error=%v", specialistID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /specialists/{id}/bookings - Failed to get bookings: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/bookings - Bookings retrieved successfully: specialist_id=%d, count=%d",
		specialistID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
