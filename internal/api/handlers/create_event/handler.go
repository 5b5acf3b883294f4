package create_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	createEvent "github.com/m04kA/SMC-CalendarService/internal/usecase/create_event"
)

const (
	msgInvalidSpecialistID = "некорректный ID специалиста"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректный формат времени, ожидается YYYY-MM-DDTHH:MM"
	msgSpecialistNotFound  = "специалист не найден"
	msgInvalidInput        = "некорректные данные события"
	msgInvalidTimeRange    = "окончание события должно быть позже начала"
	msgInvalidRule         = "некорректное правило повторения"
)

type Handler struct {
	useCase CreateEventUseCase
	logger  Logger
}

func NewHandler(useCase CreateEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/specialists/{specialistId}/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialistID, err := handlers.PathID(r, "specialistId")
	if err != nil {
		h.logger.Warn("POST /specialists/{id}/events - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	var req CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /specialists/{id}/events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(specialistID)
	if err != nil {
		h.logger.Warn("POST /specialists/{id}/events - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createEvent.ErrSpecialistNotFound):
			h.logger.Warn("POST /specialists/{id}/events - Specialist not found: specialist_id=%d", specialistID)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, createEvent.ErrInvalidRule):
			h.logger.Warn("POST /specialists/{id}/events - Invalid recurrence rule: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, createEvent.ErrInvalidTimeRange):
			h.logger.Warn("POST /specialists/{id}/events - Invalid time range: start=%s, end=%s", req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createEvent.ErrInvalidInput):
			h.logger.Warn("POST /specialists/{id}/events - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /specialists/{id}/events - Failed to create event: specialist_id=%d, error=%v",
				specialistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /specialists/{id}/events - Event created successfully: event_id=%d, occurrences=%d, skipped=%d",
		result.ID, result.OccurrencesCreated, result.OccurrencesSkipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
