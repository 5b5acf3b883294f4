package replace_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/service/preferences"
	"github.com/m04kA/SMC-CalendarService/internal/service/preferences/models"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgSpecialistNotFound  = "специалист не найден"
	msgInvalidInput        = "некорректные рабочие часы"
)

type Handler struct {
	service PreferencesService
	logger  Logger
}

func NewHandler(service PreferencesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/specialists/{specialistId}/working-hours
// Заменяет набор рабочих часов целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("PUT /specialists/{id}/working-hours - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	var req models.ReplaceWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /specialists/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceWorkingHours(r.Context(), specialistID, &req)
	if err != nil {
		switch {
		case errors.Is(err, preferences.ErrSpecialistNotFound):
			h.logger.Warn("PUT /specialists/{id}/working-hours - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, preferences.ErrInvalidInput):
			h.logger.Warn("PUT /specialists/{id}/working-hours - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /specialists/{id}/working-hours - Failed to replace working hours: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /specialists/{id}/working-hours - Working hours replaced: specialist_id=%d, days=%d",
		specialistID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
