package update_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	updateEvent "github.com/m04kA/SMC-CalendarService/internal/usecase/update_event"
)

const (
	msgInvalidEventID     = "некорректный ID события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidQuery       = "некорректный параметр applyToSeries"
	msgInvalidDateTime    = "некорректный формат времени, ожидается YYYY-MM-DDTHH:MM"
	msgNotFound           = "событие не найдено"
	msgEmptyPatch         = "нет изменяемых полей"
	msgInvalidTimeRange   = "окончание события должно быть позже начала"
	msgInvalidInput       = "некорректные данные события"
	msgOccurrenceCanceled = "повторение события отменено"
)

type Handler struct {
	useCase UpdateEventUseCase
	logger  Logger
}

func NewHandler(useCase UpdateEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/events/{eventId}?applyToSeries=bool
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := handlers.PathID(r, "eventId")
	if err != nil {
		h.logger.Warn("PATCH /events/{id} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	applyToSeries, err := handlers.QueryBool(r, "applyToSeries")
	if err != nil {
		h.logger.Warn("PATCH /events/{id} - Invalid applyToSeries: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	var req UpdateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /events/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(eventID, applyToSeries)
	if err != nil {
		h.logger.Warn("PATCH /events/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateEvent.ErrEventNotFound):
			h.logger.Warn("PATCH /events/{id} - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateEvent.ErrOccurrenceCancelled):
			h.logger.Warn("PATCH /events/{id} - Occurrence is cancelled: event_id=%d", eventID)
			handlers.RespondConflict(w, msgOccurrenceCanceled)

		case errors.Is(err, updateEvent.ErrEmptyPatch):
			h.logger.Warn("PATCH /events/{id} - Empty patch: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgEmptyPatch)

		case errors.Is(err, updateEvent.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /events/{id} - Invalid time range: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, updateEvent.ErrInvalidInput):
			h.logger.Warn("PATCH /events/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /events/{id} - Failed to update event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /events/{id} - Event updated successfully: event_id=%d, apply_to_series=%t, rows=%d",
		eventID, applyToSeries, result.UpdatedRows)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
