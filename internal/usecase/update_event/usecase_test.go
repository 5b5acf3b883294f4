package update_event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/testfixtures"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

func newUseCase(store *testfixtures.Store) *UseCase {
	return NewUseCase(store.Events, store.Exceptions, &testfixtures.TxManager{}, &testfixtures.Logger{})
}

// seedSeries stores a daily 09:00-10:00 series on 2025-01-06..08 and returns its rows
func seedSeries(t *testing.T, store *testfixtures.Store) []*domain.CalendarEvent {
	t.Helper()
	seriesID := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	rows := make([]*domain.CalendarEvent, 0, 3)
	for i := 0; i < 3; i++ {
		day := testfixtures.Date(2025, time.January, 6+i)
		e := testfixtures.Event(1, domain.EventTypeAvailability, testfixtures.At(day, "09:00"), testfixtures.At(day, "10:00"))
		e.SeriesID = seriesID
		if i == 0 {
			e.IsRecurring = true
			e.IsBaseInstance = true
			e.RecurrenceRule = ptr.Ptr("FREQ=DAILY;COUNT=2")
		} else {
			start := e.Start
			e.OriginalStart = &start
		}
		created, err := store.Events.Create(context.Background(), e)
		require.NoError(t, err)
		rows = append(rows, created)
	}
	return rows
}

func TestExecute_SeriesPatchShiftsEveryMember(t *testing.T) {
	store := testfixtures.NewStore()
	rows := seedSeries(t, store)

	newStart := rows[1].Start.Add(30 * time.Minute)
	newEnd := rows[1].End.Add(30 * time.Minute)
	resp, err := newUseCase(store).Execute(context.Background(), &Request{
		EventID:       rows[1].ID,
		ApplyToSeries: true,
		Patch:         Patch{Start: &newStart, End: &newEnd, BufferAfter: ptr.Ptr(10)},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.UpdatedRows)

	for i, row := range store.Events.All() {
		assert.Equal(t, 6+i, row.Start.Day(), "member keeps its own date")
		assert.Equal(t, "09:30", row.Start.Format("15:04"))
		assert.Equal(t, "10:30", row.End.Format("15:04"))
		assert.Equal(t, 10, row.BufferAfter)
	}
}

func TestExecute_SingleOccurrenceRecordsModifiedException(t *testing.T) {
	store := testfixtures.NewStore()
	rows := seedSeries(t, store)

	resp, err := newUseCase(store).Execute(context.Background(), &Request{
		EventID: rows[2].ID,
		Patch:   Patch{Title: ptr.Ptr("Short day"), End: ptr.Ptr(rows[2].Start.Add(30 * time.Minute))},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ExceptionID)
	assert.Equal(t, domain.ExceptionModified, *resp.ExceptionType)
	assert.Zero(t, resp.UpdatedRows)

	excs := store.Exceptions.All()
	require.Len(t, excs, 1)
	assert.Equal(t, rows[2].ID, excs[0].EventID)
	assert.True(t, excs[0].ExceptionDate.Equal(testfixtures.Date(2025, time.January, 8)))
	assert.Equal(t, "Short day", *excs[0].NewTitle)
	assert.Equal(t, "09:30", excs[0].NewEnd.Format("15:04"))

	stored, err := store.Events.GetByID(context.Background(), rows[2].ID)
	require.NoError(t, err)
	assert.Equal(t, rows[2].Title, stored.Title, "row stays intact")
	assert.True(t, stored.End.Equal(rows[2].End))
}

func TestExecute_OccurrenceMovedToAnotherDate(t *testing.T) {
	store := testfixtures.NewStore()
	rows := seedSeries(t, store)
	uc := newUseCase(store)

	moved := testfixtures.At(testfixtures.Date(2025, time.January, 10), "14:00")
	resp, err := uc.Execute(context.Background(), &Request{EventID: rows[1].ID, Patch: Patch{Start: &moved}})
	require.NoError(t, err)
	assert.Equal(t, domain.ExceptionMoved, *resp.ExceptionType)

	excs := store.Exceptions.All()
	require.Len(t, excs, 1)
	assert.True(t, excs[0].ExceptionDate.Equal(testfixtures.Date(2025, time.January, 7)))
	assert.Equal(t, time.Hour, excs[0].NewEnd.Sub(*excs[0].NewStart), "duration is kept")

	// A title-only edit of the moved occurrence keeps the move
	resp, err = uc.Execute(context.Background(), &Request{EventID: rows[1].ID, Patch: Patch{Title: ptr.Ptr("Renamed")}})
	require.NoError(t, err)
	assert.Equal(t, domain.ExceptionMoved, *resp.ExceptionType)

	excs = store.Exceptions.All()
	require.Len(t, excs, 1)
	assert.Equal(t, domain.ExceptionMoved, excs[0].Type)
	assert.Equal(t, "Renamed", *excs[0].NewTitle)
	require.NotNil(t, excs[0].NewStart)
	assert.True(t, excs[0].NewStart.Equal(moved))
	assert.True(t, excs[0].NewEnd.Equal(moved.Add(time.Hour)))

	// A new end alone is applied to the moved interval
	resp, err = uc.Execute(context.Background(), &Request{EventID: rows[1].ID, Patch: Patch{End: ptr.Ptr(moved.Add(90 * time.Minute))}})
	require.NoError(t, err)
	excs = store.Exceptions.All()
	require.Len(t, excs, 1)
	assert.True(t, excs[0].NewStart.Equal(moved))
	assert.True(t, excs[0].NewEnd.Equal(moved.Add(90*time.Minute)))
	assert.Equal(t, "Renamed", *excs[0].NewTitle)
}

func TestExecute_CancelledOccurrenceIsNotEdited(t *testing.T) {
	store := testfixtures.NewStore()
	rows := seedSeries(t, store)
	_, err := store.Exceptions.Upsert(context.Background(), &domain.EventException{
		EventID:       rows[1].ID,
		ExceptionDate: testfixtures.Date(2025, time.January, 7),
		Type:          domain.ExceptionCancelled,
	})
	require.NoError(t, err)

	_, err = newUseCase(store).Execute(context.Background(), &Request{EventID: rows[1].ID, Patch: Patch{Title: ptr.Ptr("Back")}})
	assert.ErrorIs(t, err, ErrOccurrenceCancelled)

	excs := store.Exceptions.All()
	require.Len(t, excs, 1)
	assert.Equal(t, domain.ExceptionCancelled, excs[0].Type)
	assert.Nil(t, excs[0].NewTitle)
}

func TestExecute_StandaloneEventPatchesRow(t *testing.T) {
	store := testfixtures.NewStore()
	day := testfixtures.Date(2025, time.January, 6)
	e, err := store.Events.Create(context.Background(),
		testfixtures.Event(1, domain.EventTypeBlock, testfixtures.At(day, "12:00"), testfixtures.At(day, "13:00")))
	require.NoError(t, err)

	resp, err := newUseCase(store).Execute(context.Background(), &Request{
		EventID: e.ID,
		Patch:   Patch{Title: ptr.Ptr("Lunch"), End: ptr.Ptr(testfixtures.At(day, "13:30"))},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.UpdatedRows)
	assert.Nil(t, resp.ExceptionID)

	stored, err := store.Events.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", stored.Title)
	assert.Equal(t, "13:30", stored.End.Format("15:04"))
	assert.Empty(t, store.Exceptions.All())
}

func TestExecute_Errors(t *testing.T) {
	store := testfixtures.NewStore()
	rows := seedSeries(t, store)
	require.NoError(t, store.Events.Deactivate(context.Background(), rows[2].ID))
	uc := newUseCase(store)

	_, err := uc.Execute(context.Background(), &Request{EventID: 999, Patch: Patch{Title: ptr.Ptr("x")}})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = uc.Execute(context.Background(), &Request{EventID: rows[2].ID, Patch: Patch{Title: ptr.Ptr("x")}})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = uc.Execute(context.Background(), &Request{EventID: rows[0].ID})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	_, err = uc.Execute(context.Background(), &Request{
		EventID: rows[1].ID,
		Patch:   Patch{End: ptr.Ptr(rows[1].Start.Add(-time.Hour))},
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = uc.Execute(context.Background(), &Request{
		EventID: rows[1].ID,
		Patch:   Patch{Visibility: ptr.Ptr(domain.Visibility("team"))},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
