package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

func day(month time.Month, d, hour int) time.Time {
	return time.Date(2025, month, d, hour, 0, 0, 0, time.UTC)
}

func baseEvent() domain.Interval {
	// понедельник 2025-01-06 09:00-10:00
	return domain.Interval{Start: day(time.January, 6, 9), End: day(time.January, 6, 10)}
}

func starts(occurrences []domain.Interval) []time.Time {
	out := make([]time.Time, len(occurrences))
	for i, o := range occurrences {
		out[i] = o.Start
	}
	return out
}

func TestExpand_WeeklyByWeekdayWithCount(t *testing.T) {
	rule := Rule{Frequency: FrequencyWeekly, Interval: 1, ByWeekday: []int{0, 2, 4}, Count: 5}

	got, err := Expand(baseEvent(), rule, Options{})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(time.January, 8, 9),
		day(time.January, 10, 9),
		day(time.January, 13, 9),
		day(time.January, 15, 9),
		day(time.January, 17, 9),
	}, starts(got))
	for _, o := range got {
		assert.Equal(t, time.Hour, o.Duration())
	}
}

func TestExpand_Deterministic(t *testing.T) {
	rule := Rule{Frequency: FrequencyWeekly, ByWeekday: []int{1, 3}, Count: 20}

	first, err := Expand(baseEvent(), rule, Options{})
	require.NoError(t, err)
	second, err := Expand(baseEvent(), rule, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpand_DailyInterval(t *testing.T) {
	rule := Rule{Frequency: FrequencyDaily, Interval: 2, Count: 3}

	got, err := Expand(baseEvent(), rule, Options{})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(time.January, 8, 9),
		day(time.January, 10, 9),
		day(time.January, 12, 9),
	}, starts(got))
}

func TestExpand_WeeklyWithoutByDayUsesBaseWeekday(t *testing.T) {
	rule := Rule{Frequency: FrequencyWeekly, Interval: 2, Count: 2}

	got, err := Expand(baseEvent(), rule, Options{})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day(time.January, 20, 9), day(time.February, 3, 9)}, starts(got))
}

func TestExpand_UntilIsInclusiveAndWinsOverCount(t *testing.T) {
	until := time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)
	rule := Rule{Frequency: FrequencyDaily, Until: &until, Count: 100}

	got, err := Expand(baseEvent(), rule, Options{})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(time.January, 7, 9),
		day(time.January, 8, 9),
		day(time.January, 9, 9),
	}, starts(got))
}

func TestExpand_HorizonCapsUnboundedRule(t *testing.T) {
	rule := Rule{Frequency: FrequencyDaily}

	got, err := Expand(baseEvent(), rule, Options{HorizonDays: 10})
	require.NoError(t, err)

	assert.Len(t, got, 9)
	assert.Equal(t, day(time.January, 15, 9), got[len(got)-1].Start)
}

func TestExpand_DefaultHorizonIsTwoYears(t *testing.T) {
	got, err := Expand(baseEvent(), Rule{Frequency: FrequencyDaily}, Options{})
	require.NoError(t, err)

	assert.Len(t, got, domain.DefaultRecurrenceHorizonDays-1)
}

func TestExpand_MonthFilters(t *testing.T) {
	rule := Rule{Frequency: FrequencyDaily, ByMonthDay: []int{1, 15}, ByMonth: []int{2, 3}, Count: 3}

	got, err := Expand(baseEvent(), rule, Options{})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(time.February, 1, 9),
		day(time.February, 15, 9),
		day(time.March, 1, 9),
	}, starts(got))
}

func TestExpand_InvalidRule(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{name: "monthly frequency", rule: Rule{Frequency: "MONTHLY"}},
		{name: "empty frequency", rule: Rule{}},
		{name: "weekday out of range", rule: Rule{Frequency: FrequencyWeekly, ByWeekday: []int{7}}},
		{name: "negative count", rule: Rule{Frequency: FrequencyDaily, Count: -1}},
		{name: "until before base", rule: Rule{Frequency: FrequencyDaily, Until: func() *time.Time {
			u := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			return &u
		}()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(baseEvent(), tt.rule, Options{})
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}

func TestExpand_InvalidDuration(t *testing.T) {
	base := domain.Interval{Start: day(time.January, 6, 9), End: day(time.January, 6, 9)}

	_, err := Expand(base, Rule{Frequency: FrequencyDaily}, Options{})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExpand_CountExcludesBaseThatDoesNotMatch(t *testing.T) {
	// base on Monday, rule only on Tuesdays and Thursdays
	rule := Rule{Frequency: FrequencyWeekly, ByWeekday: []int{1, 3}, Count: 3}

	got, err := Expand(baseEvent(), rule, Options{})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(time.January, 7, 9),
		day(time.January, 9, 9),
		day(time.January, 14, 9),
	}, starts(got))
}

func TestExpand_MatchesParsedRule(t *testing.T) {
	rule, err := ParseRule("FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,FR;COUNT=4")
	require.NoError(t, err)

	got, err := Expand(baseEvent(), rule, Options{})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(time.January, 10, 9),
		day(time.January, 20, 9),
		day(time.January, 24, 9),
		day(time.February, 3, 9),
	}, starts(got))
}
