package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/conflict"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/availability"
	"github.com/m04kA/SMC-CalendarService/internal/testfixtures"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

const (
	specialistID = int64(1)
	serviceID    = int64(10)
)

type fixture struct {
	store   *testfixtures.Store
	clock   *testfixtures.Clock
	metrics *metrics.Metrics
	uc      *UseCase
}

func newFixture() *fixture {
	store := testfixtures.NewStore()
	store.Catalog.AddSpecialist(&domain.Specialist{ID: specialistID, Name: "Dr. Smith"})
	store.Catalog.AddService(&domain.Service{ID: serviceID, SpecialistID: specialistID, Name: "Consultation", DurationMinutes: 45})

	logger := &testfixtures.Logger{}
	detector := conflict.NewDetector(store.Events, store.Exceptions)
	windows := availability.NewService(store.Availability, detector, logger)
	clock := testfixtures.NewClock(time.Time{})
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())

	uc := NewUseCase(store.Catalog, store.Bookings, windows, detector, m, clock, logger, 30)
	return &fixture{store: store, clock: clock, metrics: m, uc: uc}
}

func starts(slots []Slot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime.String()+"-"+s.EndTime.String())
	}
	return result
}

// tuesday day after ReferenceTime
var tuesday = testfixtures.Date(2025, time.January, 7)

func TestExecute_DurationAlignedSlots(t *testing.T) {
	f := newFixture()
	f.store.SeedEvent(testfixtures.Event(specialistID, domain.EventTypeAvailability,
		testfixtures.At(tuesday, "09:00"), testfixtures.At(tuesday, "12:00")))

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: specialistID, ServiceID: ptr.Ptr(serviceID), Date: tuesday})
	require.NoError(t, err)

	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, []string{"09:00-09:45", "09:45-10:30", "10:30-11:15", "11:15-12:00"}, starts(resp.Slots))
	assert.Equal(t, 4.0, testutil.ToFloat64(f.metrics.SlotsListed.WithLabelValues("test")))
}

func TestExecute_ConfirmedBookingsBlockSlots(t *testing.T) {
	f := newFixture()
	f.store.SeedEvent(testfixtures.Event(specialistID, domain.EventTypeAvailability,
		testfixtures.At(tuesday, "09:00"), testfixtures.At(tuesday, "12:00")))

	f.store.Bookings.Put(&domain.Booking{
		SpecialistID: specialistID, ServiceID: serviceID, Date: tuesday,
		StartTime: "10:00", EndTime: "10:30", Status: domain.StatusConfirmed,
	})
	f.store.Bookings.Put(&domain.Booking{
		SpecialistID: specialistID, ServiceID: serviceID, Date: tuesday,
		StartTime: "11:15", EndTime: "12:00", Status: domain.StatusCancelled,
	})

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: specialistID, ServiceID: ptr.Ptr(serviceID), Date: tuesday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00-09:45", "10:30-11:15", "11:15-12:00"}, starts(resp.Slots))
}

func TestExecute_BufferedEventBlocksSlots(t *testing.T) {
	f := newFixture()
	f.store.SeedEvent(testfixtures.Event(specialistID, domain.EventTypeAvailability,
		testfixtures.At(tuesday, "09:00"), testfixtures.At(tuesday, "12:00")))

	block := testfixtures.Event(specialistID, domain.EventTypeBlock,
		testfixtures.At(tuesday, "12:30"), testfixtures.At(tuesday, "13:00"))
	block.BufferBefore = 40
	f.store.SeedEvent(block)

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: specialistID, ServiceID: ptr.Ptr(serviceID), Date: tuesday})
	require.NoError(t, err)
	// Блок 12:30 с буфером 40 минут занимает время с 11:50
	assert.Equal(t, []string{"09:00-09:45", "09:45-10:30", "10:30-11:15"}, starts(resp.Slots))
}

func TestExecute_MergesLegacySlotsAndFallsBackToShortestService(t *testing.T) {
	f := newFixture()
	f.store.Catalog.AddService(&domain.Service{ID: 11, SpecialistID: specialistID, Name: "Quick check", DurationMinutes: 20})

	f.store.SeedEvent(testfixtures.Event(specialistID, domain.EventTypeAvailability,
		testfixtures.At(tuesday, "09:00"), testfixtures.At(tuesday, "09:40")))
	_, err := f.store.Availability.Create(context.Background(), &domain.AvailabilitySlot{
		SpecialistID: specialistID, Date: tuesday, StartTime: types.TimeString("14:00"), EndTime: types.TimeString("14:40"), IsAvailable: true,
	})
	require.NoError(t, err)
	_, err = f.store.Availability.Create(context.Background(), &domain.AvailabilitySlot{
		SpecialistID: specialistID, Date: tuesday, StartTime: types.TimeString("16:00"), EndTime: types.TimeString("17:00"), IsAvailable: false,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: specialistID, Date: tuesday})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.DurationMinutes)
	assert.Equal(t, []string{"09:00-09:20", "09:20-09:40", "14:00-14:20", "14:20-14:40"}, starts(resp.Slots))
}

func TestExecute_LegacySlotUnderAvailabilityEvent(t *testing.T) {
	f := newFixture()
	f.store.SeedEvent(testfixtures.Event(specialistID, domain.EventTypeAvailability,
		testfixtures.At(tuesday, "10:00"), testfixtures.At(tuesday, "13:00")))
	_, err := f.store.Availability.Create(context.Background(), &domain.AvailabilitySlot{
		SpecialistID: specialistID, Date: tuesday, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("12:00"), IsAvailable: true,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: specialistID, ServiceID: ptr.Ptr(serviceID), Date: tuesday})
	require.NoError(t, err)

	// 09:45-10:30 sits in the legacy window only and overlaps the event.
	// Legacy candidates inside the event window are admitted by it.
	assert.Equal(t, []string{
		"09:00-09:45",
		"10:00-10:45", "10:30-11:15", "10:45-11:30",
		"11:15-12:00", "11:30-12:15", "12:15-13:00",
	}, starts(resp.Slots))
}

func TestExecute_DefaultDurationAndPastSlots(t *testing.T) {
	f := newFixture()
	f.store.Catalog.AddSpecialist(&domain.Specialist{ID: 2, Name: "No services"})
	f.store.SeedEvent(testfixtures.Event(2, domain.EventTypeAvailability,
		testfixtures.At(tuesday, "09:00"), testfixtures.At(tuesday, "10:30")))
	f.clock.Set(testfixtures.At(tuesday, "09:10"))

	resp, err := f.uc.Execute(context.Background(), &Request{SpecialistID: 2, Date: tuesday})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, []string{"09:30-10:00", "10:00-10:30"}, starts(resp.Slots))
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture()
	f.store.Catalog.AddSpecialist(&domain.Specialist{ID: 2, Name: "Other"})
	f.store.Catalog.AddService(&domain.Service{ID: 20, SpecialistID: 2, Name: "Other service", DurationMinutes: 30})

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"missing specialist id", &Request{Date: tuesday}, ErrInvalidInput},
		{"past date", &Request{SpecialistID: specialistID, Date: tuesday.AddDate(0, 0, -2)}, ErrInvalidDate},
		{"unknown specialist", &Request{SpecialistID: 99, Date: tuesday}, ErrSpecialistNotFound},
		{"unknown service", &Request{SpecialistID: specialistID, ServiceID: ptr.Ptr(int64(99)), Date: tuesday}, ErrServiceNotFound},
		{"foreign service", &Request{SpecialistID: specialistID, ServiceID: ptr.Ptr(int64(20)), Date: tuesday}, ErrServiceNotOffered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
