package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	rule, err := ParseRule("RRULE:FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE,FR;COUNT=5")
	require.NoError(t, err)

	assert.Equal(t, FrequencyWeekly, rule.Frequency)
	assert.Equal(t, 2, rule.Interval)
	assert.Equal(t, []int{0, 2, 4}, rule.ByWeekday)
	assert.Equal(t, 5, rule.Count)
	assert.Nil(t, rule.Until)
}

func TestParseRule_Until(t *testing.T) {
	rule, err := ParseRule("FREQ=DAILY;UNTIL=20250131T000000Z")
	require.NoError(t, err)

	require.NotNil(t, rule.Until)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), *rule.Until)
}

func TestParseRule_Rejects(t *testing.T) {
	for _, s := range []string{
		"",
		"FREQ=MONTHLY;BYMONTHDAY=1",
		"FREQ=WEEKLY;BYDAY=1MO",
		"FREQ=DAILY;BYHOUR=9",
		"not a rule",
	} {
		_, err := ParseRule(s)
		assert.ErrorIs(t, err, ErrInvalidRule, s)
	}
}

func TestRuleString_RoundTrip(t *testing.T) {
	until := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	rule := Rule{
		Frequency: FrequencyWeekly,
		Interval:  1,
		ByWeekday: []int{1, 3},
		ByMonth:   []int{5, 6},
		Until:     &until,
	}

	parsed, err := ParseRule(rule.String())
	require.NoError(t, err)

	assert.Equal(t, rule.Frequency, parsed.Frequency)
	assert.Equal(t, rule.ByWeekday, parsed.ByWeekday)
	assert.Equal(t, rule.ByMonth, parsed.ByMonth)
	require.NotNil(t, parsed.Until)
	assert.True(t, until.Equal(*parsed.Until))
}
