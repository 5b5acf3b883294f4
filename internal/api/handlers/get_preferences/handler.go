package get_preferences

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

// Handle GET /api/v1/specialists/{specialistId}/preferences
// Если настройки не сохранены, возвращаются значения по умолчанию (isDefault=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/preferences - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	result, err := h.service.Get(r.Context(), specialistID)
	if err != nil {
		switch {
		case errors.Is(err, preferences.ErrSpecialistNotFound):
			h.logger.Warn("GET /specialists/{id}/preferences - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		default:
			h.logger.Error("GET /specialists/{id}/preferences - Failed to get preferences: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/preferences - Preferences retrieved: specialist_id=%d, default=%t",
		specialistID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
