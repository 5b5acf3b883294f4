package list_events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/testfixtures"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

func newUseCase(store *testfixtures.Store) *UseCase {
	return NewUseCase(store.Events, store.Exceptions, &testfixtures.Logger{})
}

func week(from time.Time) *Request {
	return &Request{SpecialistID: 1, From: from, To: from.AddDate(0, 0, 7)}
}

func TestExecute_AppliesExceptions(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore()
	monday := testfixtures.Date(2025, time.January, 6)
	rows := store.SeedDailySeries(1, domain.EventTypeAvailability, monday, 3, "09:00", "10:00")

	_, err := store.Exceptions.Upsert(ctx, &domain.EventException{
		EventID: rows[1].ID, ExceptionDate: rows[1].OccurrenceDate(), Type: domain.ExceptionCancelled,
	})
	require.NoError(t, err)
	_, err = store.Exceptions.Upsert(ctx, &domain.EventException{
		EventID: rows[2].ID, ExceptionDate: rows[2].OccurrenceDate(), Type: domain.ExceptionModified,
		NewTitle: ptr.Ptr("Team sync"),
	})
	require.NoError(t, err)

	resp, err := newUseCase(store).Execute(ctx, week(monday))
	require.NoError(t, err)
	require.Len(t, resp.Events, 2)

	assert.Equal(t, rows[0].ID, resp.Events[0].ID)
	assert.Equal(t, "availability", resp.Events[0].Title)
	assert.Equal(t, rows[2].ID, resp.Events[1].ID)
	assert.Equal(t, "Team sync", resp.Events[1].Title)
	assert.Equal(t, "09:00", resp.Events[1].Start.Format("15:04"), "fields without override stay unchanged")
}

func TestExecute_MovedOccurrenceFollowsNewTime(t *testing.T) {
	ctx := context.Background()
	store := testfixtures.NewStore()
	monday := testfixtures.Date(2025, time.January, 6)
	rows := store.SeedDailySeries(1, domain.EventTypeBlock, monday, 2, "09:00", "10:00")

	nextMonday := monday.AddDate(0, 0, 7)
	_, err := store.Exceptions.Upsert(ctx, &domain.EventException{
		EventID:       rows[1].ID,
		ExceptionDate: rows[1].OccurrenceDate(),
		Type:          domain.ExceptionMoved,
		NewStart:      ptr.Ptr(testfixtures.At(nextMonday, "14:00")),
		NewEnd:        ptr.Ptr(testfixtures.At(nextMonday, "15:00")),
	})
	require.NoError(t, err)

	resp, err := newUseCase(store).Execute(ctx, week(monday))
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, rows[0].ID, resp.Events[0].ID)

	resp, err = newUseCase(store).Execute(ctx, week(nextMonday))
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, rows[1].ID, resp.Events[0].ID)
	assert.Equal(t, testfixtures.At(nextMonday, "14:00"), resp.Events[0].Start)
	require.NotNil(t, resp.Events[0].OriginalStart)
	assert.Equal(t, rows[1].Start, *resp.Events[0].OriginalStart)
}

func TestExecute_Filters(t *testing.T) {
	store := testfixtures.NewStore()
	monday := testfixtures.Date(2025, time.January, 6)

	store.SeedEvent(testfixtures.Event(1, domain.EventTypeAvailability,
		testfixtures.At(monday, "09:00"), testfixtures.At(monday, "12:00")))

	private := testfixtures.Event(1, domain.EventTypeBlock,
		testfixtures.At(monday, "13:00"), testfixtures.At(monday, "14:00"))
	private.Visibility = domain.VisibilityPrivate
	private.Category = ptr.Ptr("personal")
	store.SeedEvent(private)

	// Другой специалист не попадает в выборку
	store.SeedEvent(testfixtures.Event(2, domain.EventTypeBlock,
		testfixtures.At(monday, "13:00"), testfixtures.At(monday, "14:00")))

	uc := newUseCase(store)

	req := week(monday)
	req.Visibility = ptr.Ptr(domain.VisibilityPublic)
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, domain.EventTypeAvailability, resp.Events[0].EventType)

	req = week(monday)
	req.Categories = []string{"personal"}
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, domain.VisibilityPrivate, resp.Events[0].Visibility)

	req = week(monday)
	req.Types = []domain.EventType{domain.EventTypeAppointment}
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Events)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(testfixtures.NewStore())
	monday := testfixtures.Date(2025, time.January, 6)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"missing specialist", &Request{From: monday, To: monday.AddDate(0, 0, 1)}, ErrInvalidInput},
		{"inverted range", &Request{SpecialistID: 1, From: monday, To: monday}, ErrInvalidTimeRange},
		{"too wide", &Request{SpecialistID: 1, From: monday, To: monday.AddDate(2, 0, 0)}, ErrInvalidInput},
		{"unknown type", &Request{SpecialistID: 1, From: monday, To: monday.AddDate(0, 0, 1), Types: []domain.EventType{"meeting"}}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
