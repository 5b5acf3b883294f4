package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CalendarService/internal/testfixtures"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

func putBooking(store *testfixtures.Store, specialistID int64, date time.Time, start, end string, status domain.BookingStatus) *domain.Booking {
	return store.Bookings.Put(&domain.Booking{
		SpecialistID: specialistID,
		ServiceID:    1,
		ClientName:   "Jane",
		ClientEmail:  ptr.Ptr("jane@x.com"),
		Date:         date,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		Status:       status,
	})
}

func TestService_GetByID(t *testing.T) {
	store := testfixtures.NewStore()
	b := putBooking(store, 1, testfixtures.Date(2025, time.January, 6), "10:00", "10:45", domain.StatusConfirmed)
	svc := NewService(store.Bookings, &testfixtures.Logger{})

	resp, err := svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:45", resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ListFilters(t *testing.T) {
	store := testfixtures.NewStore()
	mon := testfixtures.Date(2025, time.January, 6)
	putBooking(store, 1, mon, "10:00", "10:30", domain.StatusConfirmed)
	putBooking(store, 1, mon.AddDate(0, 0, 1), "10:00", "10:30", domain.StatusCancelled)
	putBooking(store, 1, mon.AddDate(0, 0, 5), "10:00", "10:30", domain.StatusConfirmed)
	putBooking(store, 2, mon, "10:00", "10:30", domain.StatusConfirmed)
	svc := NewService(store.Bookings, &testfixtures.Logger{})

	all, err := svc.List(context.Background(), &models.ListBookingsRequest{SpecialistID: 1})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 3)

	end := mon.AddDate(0, 0, 1)
	ranged, err := svc.List(context.Background(), &models.ListBookingsRequest{SpecialistID: 1, StartDate: &mon, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, ranged.Bookings, 2)

	confirmed, err := svc.List(context.Background(), &models.ListBookingsRequest{SpecialistID: 1, Status: ptr.Ptr("confirmed")})
	require.NoError(t, err)
	require.Len(t, confirmed.Bookings, 2)
	for _, b := range confirmed.Bookings {
		assert.Equal(t, "confirmed", b.Status)
	}

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{SpecialistID: 1, Status: ptr.Ptr("pending")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{SpecialistID: 1, StartDate: &end, EndDate: &mon})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Transitions(t *testing.T) {
	day := testfixtures.Date(2025, time.January, 6)

	tests := []struct {
		name    string
		from    domain.BookingStatus
		call    func(svc *Service, id int64) (*models.BookingResponse, error)
		want    domain.BookingStatus
		wantErr error
	}{
		{
			name: "confirmed to completed",
			from: domain.StatusConfirmed,
			call: func(svc *Service, id int64) (*models.BookingResponse, error) {
				return svc.Complete(context.Background(), id)
			},
			want: domain.StatusCompleted,
		},
		{
			name: "confirmed to cancelled",
			from: domain.StatusConfirmed,
			call: func(svc *Service, id int64) (*models.BookingResponse, error) {
				return svc.Cancel(context.Background(), id)
			},
			want: domain.StatusCancelled,
		},
		{
			name: "status update by name",
			from: domain.StatusConfirmed,
			call: func(svc *Service, id int64) (*models.BookingResponse, error) {
				return svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "completed"})
			},
			want: domain.StatusCompleted,
		},
		{
			name: "cancelled cannot be completed",
			from: domain.StatusCancelled,
			call: func(svc *Service, id int64) (*models.BookingResponse, error) {
				return svc.Complete(context.Background(), id)
			},
			want:    domain.StatusCancelled,
			wantErr: ErrInvalidTransition,
		},
		{
			name: "completed cannot be cancelled",
			from: domain.StatusCompleted,
			call: func(svc *Service, id int64) (*models.BookingResponse, error) {
				return svc.Cancel(context.Background(), id)
			},
			want:    domain.StatusCompleted,
			wantErr: ErrInvalidTransition,
		},
		{
			name: "confirmed cannot be reconfirmed",
			from: domain.StatusConfirmed,
			call: func(svc *Service, id int64) (*models.BookingResponse, error) {
				return svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "confirmed"})
			},
			want:    domain.StatusConfirmed,
			wantErr: ErrInvalidTransition,
		},
		{
			name: "unknown status",
			from: domain.StatusConfirmed,
			call: func(svc *Service, id int64) (*models.BookingResponse, error) {
				return svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{Status: "no_show"})
			},
			want:    domain.StatusConfirmed,
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testfixtures.NewStore()
			b := putBooking(store, 1, day, "10:00", "10:30", tt.from)
			svc := NewService(store.Bookings, &testfixtures.Logger{})

			resp, err := tt.call(svc, b.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, string(tt.want), resp.Status)
			}

			stored, err := store.Bookings.GetByID(context.Background(), b.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Status)
		})
	}
}

func TestService_CancelMissingBooking(t *testing.T) {
	store := testfixtures.NewStore()
	svc := NewService(store.Bookings, &testfixtures.Logger{})

	_, err := svc.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
