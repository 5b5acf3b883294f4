package list_events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/testfixtures"
	listEvents "github.com/m04kA/SMC-CalendarService/internal/usecase/list_events"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := testfixtures.NewStore()
	day := testfixtures.Date(2025, time.January, 6)
	store.SeedEvent(testfixtures.Event(1, domain.EventTypeAvailability, testfixtures.At(day, "09:00"), testfixtures.At(day, "12:00")))
	store.SeedEvent(testfixtures.Event(1, domain.EventTypeBlock, testfixtures.At(day, "13:00"), testfixtures.At(day, "14:00")))
	next := day.AddDate(0, 0, 1)
	store.SeedEvent(testfixtures.Event(1, domain.EventTypeBlock, testfixtures.At(next, "10:00"), testfixtures.At(next, "11:00")))

	log := &testfixtures.Logger{}
	uc := listEvents.NewUseCase(store.Events, store.Exceptions, log)

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/specialists/{specialistId}/events", NewHandler(uc, log).Handle).Methods(http.MethodGet)
	return r
}

func get(r *mux.Router, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) EventListResponse {
	t.Helper()
	var body EventListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandle_DateBoundsAreInclusive(t *testing.T) {
	r := newRouter(t)

	rec := get(r, "/api/v1/specialists/1/events?start=2025-01-06&end=2025-01-06")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Len(t, body.Events, 2)
	assert.Equal(t, "2025-01-06T09:00", body.Events[0].Start)
	assert.Equal(t, "2025-01-06T14:00", body.Events[1].End)
}

func TestHandle_TypeFilter(t *testing.T) {
	r := newRouter(t)

	rec := get(r, "/api/v1/specialists/1/events?start=2025-01-06&end=2025-01-07&types=block")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Len(t, body.Events, 2)
	for _, e := range body.Events {
		assert.Equal(t, "block", e.EventType)
	}
}

func TestHandle_BadRequests(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name   string
		target string
		msg    string
	}{
		{"missing period", "/api/v1/specialists/1/events", msgInvalidPeriod},
		{"reversed period", "/api/v1/specialists/1/events?start=2025-01-07T10:00&end=2025-01-06T10:00", msgInvalidTimeRange},
		{"unknown visibility", "/api/v1/specialists/1/events?start=2025-01-06&end=2025-01-06&visibility=team", msgInvalidFilter},
		{"bad specialist", "/api/v1/specialists/0/events?start=2025-01-06&end=2025-01-06", msgInvalidSpecialistID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(r, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}
}
