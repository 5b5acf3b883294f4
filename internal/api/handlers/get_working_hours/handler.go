package get_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/service/preferences"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgSpecialistNotFound  = "специалист не найден"
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

// Handle GET /api/v1/specialists/{specialistId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/working-hours - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	result, err := h.service.ListWorkingHours(r.Context(), specialistID)
	if err != nil {
		switch {
		case errors.Is(err, preferences.ErrSpecialistNotFound):
			h.logger.Warn("GET /specialists/{id}/working-hours - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		default:
			h.logger.Error("GET /specialists/{id}/working-hours - Failed to list working hours: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/working-hours - Working hours retrieved: specialist_id=%d, days=%d",
		specialistID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
