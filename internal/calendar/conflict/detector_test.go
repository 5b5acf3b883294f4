package conflict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

type memEvents struct {
	events []*domain.CalendarEvent
	err    error
}

func (m *memEvents) ListOverlapping(_ context.Context, specialistID int64, window domain.Interval) ([]*domain.CalendarEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.CalendarEvent, 0)
	for _, e := range m.events {
		if e.SpecialistID == specialistID && e.IsActive && domain.Overlaps(e.Interval(), window) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEvents) GetByIDs(_ context.Context, ids []int64) ([]*domain.CalendarEvent, error) {
	out := make([]*domain.CalendarEvent, 0)
	for _, id := range ids {
		for _, e := range m.events {
			if e.ID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type memExceptions struct {
	list []*domain.EventException
}

func (m *memExceptions) ListInWindow(_ context.Context, _ int64, _ domain.Interval) ([]*domain.EventException, error) {
	return m.list, nil
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func event(id int64, start, end time.Time) *domain.CalendarEvent {
	return &domain.CalendarEvent{
		ID:           id,
		SpecialistID: 7,
		Start:        start,
		End:          end,
		EventType:    domain.EventTypeAppointment,
		Status:       domain.EventStatusConfirmed,
		IsActive:     true,
	}
}

func TestHasConflict_BufferOnlyOverlap(t *testing.T) {
	a := event(1, at(10, 0), at(11, 0))
	a.BufferAfter = 15
	d := NewDetector(&memEvents{events: []*domain.CalendarEvent{a}}, &memExceptions{})

	got, err := d.HasConflict(context.Background(), 7, domain.Interval{Start: at(11, 5), End: at(11, 35)}, nil)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = d.HasConflict(context.Background(), 7, domain.Interval{Start: at(11, 15), End: at(11, 45)}, nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHasConflict_BufferBefore(t *testing.T) {
	a := event(1, at(10, 0), at(11, 0))
	a.BufferBefore = 10
	d := NewDetector(&memEvents{events: []*domain.CalendarEvent{a}}, &memExceptions{})

	got, err := d.HasConflict(context.Background(), 7, domain.Interval{Start: at(9, 30), End: at(9, 55)}, nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestHasConflict_ExcludeAndStatus(t *testing.T) {
	availability := event(1, at(9, 0), at(12, 0))
	availability.EventType = domain.EventTypeAvailability
	cancelled := event(2, at(9, 0), at(12, 0))
	cancelled.Status = domain.EventStatusCancelled
	inactive := event(3, at(9, 0), at(12, 0))
	inactive.IsActive = false
	d := NewDetector(&memEvents{events: []*domain.CalendarEvent{availability, cancelled, inactive}}, &memExceptions{})

	proposed := domain.Interval{Start: at(9, 0), End: at(9, 45)}

	got, err := d.HasConflict(context.Background(), 7, proposed, ptr.Ptr(int64(1)))
	require.NoError(t, err)
	assert.False(t, got)

	got, err = d.HasConflict(context.Background(), 7, proposed, nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestHasConflict_ExceptionsApplied(t *testing.T) {
	cancelledOcc := event(1, at(10, 0), at(11, 0))
	movedOcc := event(2, at(10, 0).AddDate(0, 0, 1), at(11, 0).AddDate(0, 0, 1))
	newStart := at(15, 0)
	excs := &memExceptions{list: []*domain.EventException{
		{EventID: 1, ExceptionDate: domain.DateOf(at(0, 0)), Type: domain.ExceptionCancelled},
		{EventID: 2, ExceptionDate: domain.DateOf(movedOcc.Start), Type: domain.ExceptionMoved, NewStart: &newStart, NewEnd: ptr.Ptr(at(16, 0))},
	}}
	d := NewDetector(&memEvents{events: []*domain.CalendarEvent{cancelledOcc, movedOcc}}, excs)

	got, err := d.HasConflict(context.Background(), 7, domain.Interval{Start: at(10, 0), End: at(10, 30)}, nil)
	require.NoError(t, err)
	assert.False(t, got, "cancelled occurrence must not block")

	got, err = d.HasConflict(context.Background(), 7, domain.Interval{Start: at(15, 30), End: at(16, 0)}, nil)
	require.NoError(t, err)
	assert.True(t, got, "moved occurrence blocks at its new time")
}

func TestHasConflict_RepositoryError(t *testing.T) {
	d := NewDetector(&memEvents{err: errors.New("db down")}, &memExceptions{})

	_, err := d.HasConflict(context.Background(), 7, domain.Interval{Start: at(9, 0), End: at(10, 0)}, nil)
	assert.ErrorIs(t, err, ErrLoadEvents)
}
