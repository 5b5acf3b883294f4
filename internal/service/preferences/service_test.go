package preferences

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/service/preferences/models"
	"github.com/m04kA/SMC-CalendarService/internal/testfixtures"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

func newService(t *testing.T) (*Service, *testfixtures.Store, *testfixtures.TxManager) {
	t.Helper()
	store := testfixtures.NewStore()
	store.Catalog.AddSpecialist(&domain.Specialist{ID: 1, Name: "Dr. Who", Email: "who@x.com"})
	tx := &testfixtures.TxManager{}
	return NewService(store.Preferences, store.Catalog, tx, &testfixtures.Logger{}), store, tx
}

func TestService_GetFallsBackToDefaults(t *testing.T) {
	svc, _, _ := newService(t)

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultSlotIncrementMinutes, resp.SlotIncrement)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)

	_, err = svc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrSpecialistNotFound)
}

func TestService_UpdateMergesOverDefaults(t *testing.T) {
	svc, store, tx := newService(t)

	resp, err := svc.Update(context.Background(), 1, &models.UpdatePreferencesRequest{
		SlotIncrement:    ptr.Ptr(15),
		MaxDailyBookings: ptr.Ptr(6),
		LunchBreakStart:  ptr.Ptr("13:00"),
	})
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, 15, resp.SlotIncrement)
	assert.Equal(t, 6, *resp.MaxDailyBookings)
	assert.Equal(t, "13:00", *resp.LunchBreakStart)
	assert.Equal(t, domain.DefaultBufferMinutes, resp.DefaultBufferBefore, "untouched field keeps default")
	assert.Equal(t, 1, tx.Calls)

	stored, err := store.Preferences.GetPreferences(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 15, stored.SlotIncrement)

	// Second update keeps the first one's values
	resp, err = svc.Update(context.Background(), 1, &models.UpdatePreferencesRequest{LunchBreakStart: ptr.Ptr("")})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.SlotIncrement)
	assert.Nil(t, resp.LunchBreakStart)
}

func TestService_UpdateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdatePreferencesRequest
	}{
		{"zero increment", &models.UpdatePreferencesRequest{SlotIncrement: ptr.Ptr(0)}},
		{"increment too large", &models.UpdatePreferencesRequest{SlotIncrement: ptr.Ptr(domain.MaxSlotIncrement + 1)}},
		{"negative buffer", &models.UpdatePreferencesRequest{DefaultBufferBefore: ptr.Ptr(-1)}},
		{"zero daily limit", &models.UpdatePreferencesRequest{MaxDailyBookings: ptr.Ptr(0)}},
		{"bad lunch start", &models.UpdatePreferencesRequest{LunchBreakStart: ptr.Ptr("1pm")}},
		{"negative notice", &models.UpdatePreferencesRequest{MinBookingNotice: ptr.Ptr(-5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newService(t)
			_, err := svc.Update(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)

			_, err = store.Preferences.GetPreferences(context.Background(), 1)
			assert.Error(t, err, "nothing is stored")
		})
	}
}

func TestService_ReplaceWorkingHours(t *testing.T) {
	svc, _, _ := newService(t)

	resp, err := svc.ReplaceWorkingHours(context.Background(), 1, &models.ReplaceWorkingHoursRequest{
		Days: []models.WorkingDayRequest{
			{
				DayOfWeek:     0,
				TimeRanges:    []models.TimeRangeDTO{{Start: "09:00", End: "13:00"}, {Start: "14:00", End: "18:00"}},
				BreakStart:    ptr.Ptr("11:00"),
				BreakDuration: 15,
			},
			{DayOfWeek: 6, IsWorkingDay: ptr.Ptr(false)},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.True(t, resp.Days[0].IsWorkingDay)
	assert.Len(t, resp.Days[0].TimeRanges, 2)
	assert.Equal(t, "11:00", *resp.Days[0].BreakStart)
	assert.False(t, resp.Days[1].IsWorkingDay)

	// Replacing swaps the whole set
	_, err = svc.ReplaceWorkingHours(context.Background(), 1, &models.ReplaceWorkingHoursRequest{
		Days: []models.WorkingDayRequest{{DayOfWeek: 2, TimeRanges: []models.TimeRangeDTO{{Start: "10:00", End: "12:00"}}}},
	})
	require.NoError(t, err)

	listed, err := svc.ListWorkingHours(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed.Days, 1)
	assert.Equal(t, 2, listed.Days[0].DayOfWeek)
}

func TestService_ReplaceWorkingHoursValidation(t *testing.T) {
	tests := []struct {
		name string
		day  models.WorkingDayRequest
	}{
		{"day out of range", models.WorkingDayRequest{DayOfWeek: 7, TimeRanges: []models.TimeRangeDTO{{Start: "09:00", End: "10:00"}}}},
		{"reversed range", models.WorkingDayRequest{DayOfWeek: 1, TimeRanges: []models.TimeRangeDTO{{Start: "12:00", End: "09:00"}}}},
		{"overlapping ranges", models.WorkingDayRequest{DayOfWeek: 1, TimeRanges: []models.TimeRangeDTO{
			{Start: "09:00", End: "12:00"}, {Start: "11:00", End: "14:00"},
		}}},
		{"working day without ranges", models.WorkingDayRequest{DayOfWeek: 1, IsWorkingDay: ptr.Ptr(true)}},
		{"bad effective date", models.WorkingDayRequest{DayOfWeek: 1, EffectiveDate: ptr.Ptr("06/01/2025"),
			TimeRanges: []models.TimeRangeDTO{{Start: "09:00", End: "10:00"}}}},
		{"negative break", models.WorkingDayRequest{DayOfWeek: 1, BreakDuration: -10,
			TimeRanges: []models.TimeRangeDTO{{Start: "09:00", End: "10:00"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, tx := newService(t)
			_, err := svc.ReplaceWorkingHours(context.Background(), 1, &models.ReplaceWorkingHoursRequest{
				Days: []models.WorkingDayRequest{tt.day},
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, tx.Calls)
		})
	}

	t.Run("duplicate day", func(t *testing.T) {
		svc, _, _ := newService(t)
		day := models.WorkingDayRequest{DayOfWeek: 3, TimeRanges: []models.TimeRangeDTO{{Start: "09:00", End: "10:00"}}}
		_, err := svc.ReplaceWorkingHours(context.Background(), 1, &models.ReplaceWorkingHoursRequest{
			Days: []models.WorkingDayRequest{day, day},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
