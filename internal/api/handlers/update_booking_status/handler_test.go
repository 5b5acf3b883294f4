package update_booking_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/service/bookings"
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CalendarService/internal/testfixtures"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, bookingID, req)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func patch(svc BookingService, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/status", NewHandler(svc, &testfixtures.Logger{}).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body)))
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &mockBookingService{}
	svc.On("UpdateStatus", mock.Anything, int64(5), &models.UpdateStatusRequest{Status: "cancelled"}).
		Return(&models.BookingResponse{ID: 5, Status: "cancelled"}, nil).Once()

	rec := patch(svc, "/api/v1/bookings/5/status", `{"status":"cancelled"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.ID)
	assert.Equal(t, "cancelled", body.Status)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing booking", bookings.ErrBookingNotFound, http.StatusNotFound, msgNotFound},
		{"unknown status", bookings.ErrInvalidInput, http.StatusBadRequest, msgInvalidStatus},
		{"already cancelled", bookings.ErrInvalidTransition, http.StatusConflict, msgInvalidTransition},
		{"storage failure", bookings.ErrInternal, http.StatusInternalServerError, "внутренняя ошибка сервера"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{}
			svc.On("UpdateStatus", mock.Anything, int64(9), mock.AnythingOfType("*models.UpdateStatusRequest")).
				Return(nil, tt.err).Once()

			rec := patch(svc, "/api/v1/bookings/9/status", `{"status":"completed"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_RejectedBeforeService(t *testing.T) {
	svc := &mockBookingService{}

	rec := patch(svc, "/api/v1/bookings/-1/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidBookingID)

	rec = patch(svc, "/api/v1/bookings/3/status", `{"state":"completed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidRequestBody)

	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
