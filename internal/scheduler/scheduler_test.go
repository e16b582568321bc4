package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextFullHour(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), nextFullHour(now))

	onTheHour := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), nextFullHour(onTheHour))
}
