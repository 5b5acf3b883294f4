package list_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidPeriod       = "start и end обязательны, формат YYYY-MM-DD"
	msgInvalidRange        = "end раньше start"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/availability
// Query params: start, end (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/availability - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	from, errFrom := handlers.ParseDate(r.URL.Query().Get("start"))
	to, errTo := handlers.ParseDate(r.URL.Query().Get("end"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /specialists/{id}/availability - Invalid period: start=%v, end=%v", errFrom, errTo)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.ListSlots(r.Context(), specialistID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /specialists/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /specialists/{id}/availability - Failed to list slots: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/availability - Slots retrieved: specialist_id=%d, count=%d",
		specialistID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
