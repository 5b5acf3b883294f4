package slots

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/ptr"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func window(from, to time.Time) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{Interval: domain.Interval{Start: from, End: to}}
}

func TestList_ServiceLengthStepping(t *testing.T) {
	got, err := List([]domain.AvailabilityWindow{window(at(9, 0), at(12, 0))}, 45*time.Minute, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{
		{Start: at(9, 0), End: at(9, 45)},
		{Start: at(9, 45), End: at(10, 30)},
		{Start: at(10, 30), End: at(11, 15)},
		{Start: at(11, 15), End: at(12, 0)},
	}, got)
}

func TestList_BusyAndConflicts(t *testing.T) {
	w := window(at(9, 0), at(12, 0))
	w.SourceEventID = ptr.Ptr(int64(5))
	busy := []domain.Interval{{Start: at(9, 30), End: at(10, 0)}}

	var seenSource *int64
	check := func(c domain.Interval, source *int64) (bool, error) {
		seenSource = source
		return c.Start.Equal(at(11, 0)), nil
	}

	got, err := List([]domain.AvailabilityWindow{w}, time.Hour, busy, check)
	require.NoError(t, err)

	assert.Equal(t, []domain.Interval{{Start: at(10, 0), End: at(11, 0)}}, got)
	require.NotNil(t, seenSource)
	assert.Equal(t, int64(5), *seenSource)

	for _, s := range got {
		_, ok := ContainedIn(s, []domain.AvailabilityWindow{w})
		assert.True(t, ok)
		assert.False(t, OverlapsAny(s, busy))
	}
}

func TestList_CheckError(t *testing.T) {
	boom := errors.New("boom")
	_, err := List([]domain.AvailabilityWindow{window(at(9, 0), at(10, 0))}, 30*time.Minute, nil,
		func(domain.Interval, *int64) (bool, error) { return false, boom })

	assert.ErrorIs(t, err, boom)
}

func TestList_MergeDeduplicatesAndSorts(t *testing.T) {
	windows := []domain.AvailabilityWindow{
		window(at(13, 0), at(14, 0)),
		window(at(9, 0), at(10, 0)),
		window(at(9, 0), at(10, 0)),
	}

	got, err := List(windows, 30*time.Minute, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(9, 0), at(9, 30), at(13, 0), at(13, 30)},
		[]time.Time{got[0].Start, got[1].Start, got[2].Start, got[3].Start})
	assert.Len(t, got, 4)
}

func TestWalk_WindowShorterThanLength(t *testing.T) {
	assert.Empty(t, Walk(domain.Interval{Start: at(9, 0), End: at(9, 20)}, 30*time.Minute, 30*time.Minute))
	assert.Nil(t, Walk(domain.Interval{Start: at(9, 0), End: at(10, 0)}, 0, time.Minute))
}

func TestAdmits_AnyContainingWindowWithoutConflict(t *testing.T) {
	legacy := window(at(9, 0), at(12, 0))
	fromEvent := window(at(9, 0), at(12, 0))
	fromEvent.SourceEventID = ptr.Ptr(int64(7))
	windows := []domain.AvailabilityWindow{legacy, fromEvent}

	// the availability event blocks everything except when it is excluded
	check := func(_ domain.Interval, source *int64) (bool, error) {
		return source == nil || *source != 7, nil
	}

	ok, err := Admits(domain.Interval{Start: at(9, 0), End: at(9, 45)}, windows, check)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Admits(domain.Interval{Start: at(9, 0), End: at(9, 45)}, []domain.AvailabilityWindow{legacy}, check)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Admits(domain.Interval{Start: at(11, 30), End: at(12, 30)}, windows, nil)
	require.NoError(t, err)
	assert.False(t, ok, "not contained in any window")

	got, err := List(windows, 45*time.Minute, nil, check)
	require.NoError(t, err)
	assert.Len(t, got, 4, "legacy and event windows yield the same slots")
}
