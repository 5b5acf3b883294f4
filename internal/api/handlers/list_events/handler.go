package list_events

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	listEvents "github.com/m04kA/SMC-CalendarService/internal/usecase/list_events"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidPeriod       = "start и end обязательны: YYYY-MM-DD или YYYY-MM-DDTHH:MM"
	msgInvalidTimeRange    = "некорректный период"
	msgInvalidFilter       = "некорректные фильтры"
)

type Handler struct {
	useCase ListEventsUseCase
	logger  Logger
}

func NewHandler(useCase ListEventsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/specialists/{specialistId}/events
// Query params: start, end (required), visibility, types, categories (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/events - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(specialistID, r)
	if err != nil {
		h.logger.Warn("GET /specialists/{id}/events - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, listEvents.ErrInvalidTimeRange):
			h.logger.Warn("GET /specialists/{id}/events - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, listEvents.ErrInvalidInput):
			h.logger.Warn("GET /specialists/{id}/events - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /specialists/{id}/events - Failed to list events: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /specialists/{id}/events - Events retrieved successfully: specialist_id=%d, count=%d",
		specialistID, len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
