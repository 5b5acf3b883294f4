package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayLockKey(t *testing.T) {
	day := time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, dayLockKey(1, day), dayLockKey(1, day.Add(15*time.Hour)), "time of day is ignored")
	assert.NotEqual(t, dayLockKey(1, day), dayLockKey(2, day))
	assert.NotEqual(t, dayLockKey(1, day), dayLockKey(1, day.AddDate(0, 0, 1)))

	// ids that differ only above 32 bits get different keys
	assert.NotEqual(t, dayLockKey(1, day), dayLockKey(1+1<<32, day))
}
