package delete_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	deleteEvent "github.com/m04kA/SMC-CalendarService/internal/usecase/delete_event"
)

const (
	msgInvalidEventID = "некорректный ID события"
	msgInvalidQuery   = "некорректный параметр deleteSeries"
	msgNotFound       = "событие не найдено"
)

// DeleteEventResponse HTTP response model
type DeleteEventResponse struct {
	Deactivated int64 `json:"deactivated"`
}

type Handler struct {
	useCase DeleteEventUseCase
	logger  Logger
}

func NewHandler(useCase DeleteEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/events/{eventId}?deleteSeries=bool
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := handlers.PathID(r, "eventId")
	if err != nil {
		h.logger.Warn("DELETE /events/{id} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	deleteSeries, err := handlers.QueryBool(r, "deleteSeries")
	if err != nil {
		h.logger.Warn("DELETE /events/{id} - Invalid deleteSeries: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &deleteEvent.Request{EventID: eventID, DeleteSeries: deleteSeries})
	if err != nil {
		switch {
		case errors.Is(err, deleteEvent.ErrEventNotFound):
			h.logger.Warn("DELETE /events/{id} - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, deleteEvent.ErrInvalidInput):
			h.logger.Warn("DELETE /events/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEventID)

		default:
			h.logger.Error("DELETE /events/{id} - Failed to delete event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /events/{id} - Event deleted successfully: event_id=%d, delete_series=%t, rows=%d",
		eventID, deleteSeries, result.Deactivated)
	handlers.RespondJSON(w, http.StatusOK, DeleteEventResponse{Deactivated: result.Deactivated})
}
