package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayUsesLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	ts := time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-10", Day(ts, time.UTC))
	assert.Equal(t, "2024-03-11", Day(ts, jakarta))
	assert.Equal(t, "2024-03-10", Day(ts, nil))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 10, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(ts, time.UTC))
}

func TestFakeClockAdvance(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC))
	c.Advance(2 * time.Hour)
	assert.Equal(t, "2024-03-11", Day(c.Now(), time.UTC))
}
