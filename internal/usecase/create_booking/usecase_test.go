package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/conflict"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability"
	"github.com/m04kA/SMC-CalendarService/internal/testfixtures"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

const (
	specialistID = int64(1)
	serviceID    = int64(10)
)

var tuesday = testfixtures.Date(2025, time.January, 7)

type fixture struct {
	store   *testfixtures.Store
	clock   *testfixtures.Clock
	tx      *testfixtures.TxManager
	metrics *metrics.Metrics
	uc      *UseCase
}

func newFixture() *fixture {
	store := testfixtures.NewStore()
	store.Catalog.AddSpecialist(&domain.Specialist{ID: specialistID, Name: "Dr. Smith"})
	store.Catalog.AddService(&domain.Service{ID: serviceID, SpecialistID: specialistID, Name: "Consultation", DurationMinutes: 45})
	store.SeedEvent(testfixtures.Event(specialistID, domain.EventTypeAvailability,
		testfixtures.At(tuesday, "09:00"), testfixtures.At(tuesday, "12:00")))

	logger := &testfixtures.Logger{}
	detector := conflict.NewDetector(store.Events, store.Exceptions)
	clock := testfixtures.NewClock(time.Time{})
	tx := testfixtures.NewTxManager(store)
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	uc := NewUseCase(
		store.Bookings,
		store.Catalog,
		store.Preferences,
		store.Consumers,
		availability.NewService(store.Availability, detector, logger),
		detector,
		tx,
		m,
		clock,
		logger,
	)
	return &fixture{store: store, clock: clock, tx: tx, metrics: m, uc: uc}
}

func request(start string) *Request {
	return &Request{
		SpecialistID: specialistID,
		ServiceID:    serviceID,
		Date:         tuesday,
		StartTime:    types.TimeString(start),
		Contact:      domain.ContactInfo{Name: "Jane Doe", Email: ptr.Ptr("Jane@X.com")},
	}
}

func (f *fixture) rejected(reason string) float64 {
	return testutil.ToFloat64(f.metrics.BookingsRejected.WithLabelValues("test", reason))
}

func TestExecute_CreatesBookingAndConsumer(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request("09:45"))
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.True(t, resp.ConsumerCreated)
	assert.Equal(t, 1, f.store.Consumers.Count())
	assert.Equal(t, []string{"1:2025-01-07"}, f.store.Bookings.Locks)
	assert.Equal(t, 1, f.tx.SerializableCalls)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingsCreated.WithLabelValues("test")))

	stored, err := f.store.Bookings.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ConsumerID, *stored.ConsumerID)
	assert.Equal(t, "Jane@X.com", *stored.ClientEmail)
}

func TestExecute_ReusesConsumerByNormalizedEmail(t *testing.T) {
	f := newFixture()
	existing, err := f.store.Consumers.Create(context.Background(), &domain.Consumer{
		Name:            "Jane",
		Email:           ptr.Ptr("jane@x.com"),
		EmailNormalized: ptr.Ptr("jane@x.com"),
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), request("09:00"))
	require.NoError(t, err)

	assert.Equal(t, existing.ID, resp.ConsumerID)
	assert.False(t, resp.ConsumerCreated)
	assert.Equal(t, 1, f.store.Consumers.Count(), "no duplicate consumer")
}

func TestExecute_ReusesConsumerByNormalizedPhone(t *testing.T) {
	f := newFixture()
	existing, err := f.store.Consumers.Create(context.Background(), &domain.Consumer{
		Phone:           ptr.Ptr("15550100000"),
		PhoneNormalized: ptr.Ptr("15550100000"),
	})
	require.NoError(t, err)

	req := request("09:00")
	req.Contact = domain.ContactInfo{Name: "J. Doe", Phone: ptr.Ptr("+1 (555) 010-0000")}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.ConsumerID)
	assert.Equal(t, 1, f.store.Consumers.Count())
}

func TestExecute_RejectsOverlappingBooking(t *testing.T) {
	f := newFixture()
	f.store.Bookings.Put(&domain.Booking{
		SpecialistID: specialistID, ServiceID: serviceID, Date: tuesday,
		StartTime: "10:00", EndTime: "10:30", Status: domain.StatusConfirmed,
	})

	_, err := f.uc.Execute(context.Background(), request("09:45"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1.0, f.rejected(rejectBookingOverlap))
	assert.Zero(t, f.store.Consumers.Count(), "rejected booking leaves no consumer behind")

	// Граничащее бронирование не пересекается
	_, err = f.uc.Execute(context.Background(), request("10:30"))
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture()
	f.store.Bookings.Put(&domain.Booking{
		SpecialistID: specialistID, ServiceID: serviceID, Date: tuesday,
		StartTime: "09:00", EndTime: "09:45", Status: domain.StatusCancelled,
	})

	_, err := f.uc.Execute(context.Background(), request("09:00"))
	assert.NoError(t, err)
}

func TestExecute_RejectsOutsideAvailability(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("11:30"))
	assert.ErrorIs(t, err, ErrOutsideAvailability)

	_, err = f.uc.Execute(context.Background(), request("23:30"))
	assert.ErrorIs(t, err, ErrOutsideAvailability)

	assert.Equal(t, 2.0, f.rejected(rejectOutsideAvailability))
}

func TestExecute_RejectsBufferedEventConflict(t *testing.T) {
	f := newFixture()
	block := testfixtures.Event(specialistID, domain.EventTypeBlock,
		testfixtures.At(tuesday, "10:00"), testfixtures.At(tuesday, "11:00"))
	block.BufferAfter = 15
	f.store.SeedEvent(block)

	_, err := f.uc.Execute(context.Background(), request("11:05"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1.0, f.rejected(rejectEventConflict))

	_, err = f.uc.Execute(context.Background(), request("11:15"))
	assert.NoError(t, err)
}

func TestExecute_ValidatesDates(t *testing.T) {
	f := newFixture()
	_, err := f.store.Preferences.UpsertPreferences(context.Background(), &domain.SchedulingPreferences{
		SpecialistID:       specialistID,
		AdvanceBookingDays: 7,
	})
	require.NoError(t, err)

	req := request("09:00")
	req.Date = tuesday.AddDate(0, 0, -2)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	req = request("09:00")
	req.Date = tuesday.AddDate(0, 0, 30)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)

	f.clock.Set(testfixtures.At(tuesday, "10:00"))
	_, err = f.uc.Execute(context.Background(), request("09:45"))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	assert.Equal(t, 3.0, f.rejected(rejectInvalidDate))
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture()
	f.store.Catalog.AddSpecialist(&domain.Specialist{ID: 2, Name: "Other"})
	f.store.Catalog.AddService(&domain.Service{ID: 20, SpecialistID: 2, Name: "Other service", DurationMinutes: 30})

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"missing specialist id", func(r *Request) { r.SpecialistID = 0 }, ErrInvalidInput},
		{"bad start time", func(r *Request) { r.StartTime = "9am" }, ErrInvalidInput},
		{"no contact identity", func(r *Request) { r.Contact = domain.ContactInfo{Name: "Anon"} }, ErrInvalidInput},
		{"unknown specialist", func(r *Request) { r.SpecialistID = 99 }, ErrSpecialistNotFound},
		{"unknown service", func(r *Request) { r.ServiceID = 99 }, ErrServiceNotFound},
		{"foreign service", func(r *Request) { r.ServiceID = 20 }, ErrServiceNotOffered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request("09:00")
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Zero(t, f.tx.SerializableCalls, "preconditions fail before the transaction")
}

func (f *fixture) addLegacySlot(t *testing.T, start, end string) {
	t.Helper()
	_, err := f.store.Availability.Create(context.Background(), &domain.AvailabilitySlot{
		SpecialistID: specialistID,
		Date:         tuesday,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		IsAvailable:  true,
	})
	require.NoError(t, err)
}

func TestExecute_LegacySlotOverlappingAvailabilityEvent(t *testing.T) {
	f := newFixture()
	f.addLegacySlot(t, "09:00", "12:00")

	_, err := f.uc.Execute(context.Background(), request("09:00"))
	require.NoError(t, err)
	assert.Zero(t, f.rejected(rejectEventConflict))
}

func TestExecute_EachWindowChecksItsOwnSource(t *testing.T) {
	f := newFixture()
	f.addLegacySlot(t, "08:00", "10:00")

	// 08:30-09:15 lies in the legacy window only and overlaps the event
	_, err := f.uc.Execute(context.Background(), request("08:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1.0, f.rejected(rejectEventConflict))

	// 09:30-10:15 lies in the event window only, 08:15-09:00 in the legacy one
	_, err = f.uc.Execute(context.Background(), request("09:30"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("08:15"))
	require.NoError(t, err)
}

func TestExecute_StorageFailureLeavesNoConsumer(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		check     func(t *testing.T, err error)
	}{
		{
			name:      "overlap caught by constraint",
			createErr: bookingRepo.ErrSlotNotAvailable,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrSlotNotAvailable)
			},
		},
		{
			name:      "serialization failure",
			createErr: fmt.Errorf("%w: Create - execute insert: %w", bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"}),
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInternal)
				assert.True(t, txmanager.IsSerializationFailure(err), "driver error stays in the chain for a retry")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.store.Bookings.CreateErr = tt.createErr

			_, err := f.uc.Execute(context.Background(), request("09:00"))
			tt.check(t, err)
			assert.Zero(t, f.store.Consumers.Count(), "consumer insert is rolled back")
		})
	}
}

func TestExecute_RetriedTransactionCountsOnce(t *testing.T) {
	f := newFixture()
	f.tx.Attempts = 2

	resp, err := f.uc.Execute(context.Background(), request("09:00"))
	require.NoError(t, err)
	assert.True(t, resp.ConsumerCreated)
	assert.Equal(t, 1, f.store.Consumers.Count())

	bookings, err := f.store.Bookings.List(context.Background(), domain.BookingsFilter{SpecialistID: specialistID})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	_, err = f.uc.Execute(context.Background(), request("09:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1.0, f.rejected(rejectBookingOverlap))
}
