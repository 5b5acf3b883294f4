package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/testfixtures"
	createBooking "github.com/m04kA/SMC-CalendarService/internal/usecase/create_booking"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{"specialistId":1,"serviceId":2,"date":"2025-03-10","startTime":"10:00","clientName":"Ann","clientEmail":"ann@x.com"}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	created := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:              42,
		SpecialistID:    1,
		ServiceID:       2,
		ConsumerID:      7,
		ConsumerCreated: true,
		Date:            testfixtures.Date(2025, time.March, 10),
		StartTime:       "10:00",
		EndTime:         "10:30",
		DurationMinutes: 30,
		Status:          "confirmed",
		ClientName:      "Ann",
		CreatedAt:       created,
		UpdatedAt:       created,
	}}
	log := &testfixtures.Logger{}

	rec := post(NewHandler(uc, log), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "10:00", uc.got.StartTime.String())
	assert.True(t, uc.got.Date.Equal(testfixtures.Date(2025, time.March, 10)))
	assert.Equal(t, "ann@x.com", *uc.got.Contact.Email)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "2025-03-10", body.Date)
	assert.Equal(t, "10:30", body.EndTime)
	assert.True(t, body.ConsumerCreated)
	assert.Len(t, log.Infos, 1)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"slot taken", createBooking.ErrSlotNotAvailable, http.StatusConflict, msgSlotNotAvailable},
		{"specialist missing", createBooking.ErrSpecialistNotFound, http.StatusNotFound, msgSpecialistNotFound},
		{"service missing", createBooking.ErrServiceNotFound, http.StatusNotFound, msgServiceNotFound},
		{"foreign service", createBooking.ErrServiceNotOffered, http.StatusBadRequest, msgServiceNotOffered},
		{"past date", createBooking.ErrInvalidDate, http.StatusBadRequest, msgInvalidBookingDate},
		{"outside windows", createBooking.ErrOutsideAvailability, http.StatusBadRequest, msgOutsideAvailability},
		{"wrapped", fmt.Errorf("%w: details", createBooking.ErrInvalidInput), http.StatusBadRequest, msgInvalidInput},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, "внутренняя ошибка сервера"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(NewHandler(&stubUseCase{err: tt.err}, &testfixtures.Logger{}), validBody)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"not json", `{`, msgInvalidRequestBody},
		{"unknown field", `{"specialistId":1,"foo":true}`, msgInvalidRequestBody},
		{"bad date", `{"specialistId":1,"serviceId":2,"date":"10.03.2025","startTime":"10:00"}`, msgInvalidDate},
		{"bad time", `{"specialistId":1,"serviceId":2,"date":"2025-03-10","startTime":"25:00"}`, msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := post(NewHandler(uc, &testfixtures.Logger{}), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
			assert.Nil(t, uc.got, "use case is not called")
		})
	}
}
