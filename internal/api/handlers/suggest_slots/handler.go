package suggest_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	suggestSlots "github.com/m04kA/SMC-CalendarService/internal/usecase/suggest_slots"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректный формат времени, ожидается YYYY-MM-DDTHH:MM"
	msgSpecialistNotFound  = "специалист не найден"
	msgInvalidTimeRange    = "окончание периода должно быть позже начала"
	msgInvalidInput        = "некорректные параметры поиска"
)

type Handler struct {
	useCase SuggestSlotsUseCase
	logger  Logger
}

func NewHandler(useCase SuggestSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/specialists/{specialistId}/suggestions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("POST /specialists/{id}/suggestions - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	var req SuggestSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /specialists/{id}/suggestions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(specialistID)
	if err != nil {
		h.logger.Warn("POST /specialists/{id}/suggestions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, suggestSlots.ErrSpecialistNotFound):
			h.logger.Warn("POST /specialists/{id}/suggestions - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, suggestSlots.ErrInvalidTimeRange):
			h.logger.Warn("POST /specialists/{id}/suggestions - Invalid time range: start=%s, end=%s", req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, suggestSlots.ErrInvalidInput):
			h.logger.Warn("POST /specialists/{id}/suggestions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /specialists/{id}/suggestions - Failed to suggest slots: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /specialists/{id}/suggestions - Suggestions built: specialist_id=%d, count=%d",
		specialistID, len(result.Suggestions))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
