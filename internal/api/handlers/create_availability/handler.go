package create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability/models"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные слота: date YYYY-MM-DD, startTime и endTime HH:MM"
	msgInvalidTimeRange    = "окончание слота должно быть позже начала"
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

// Handle POST /api/v1/specialists/{specialistId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("POST /specialists/{id}/availability - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /specialists/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), specialistID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidTimeRange):
			h.logger.Warn("POST /specialists/{id}/availability - Invalid time range: %s-%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /specialists/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /specialists/{id}/availability - Failed to create slot: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /specialists/{id}/availability - Slot created: slot_id=%d, specialist_id=%d", slot.ID, specialistID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
