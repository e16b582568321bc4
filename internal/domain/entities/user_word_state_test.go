package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	const toReviewing, toMastered = 3, 8

	tests := []struct {
		name        string
		status      WordStatus
		reviewCount int
		want        WordStatus
		promoted    bool
	}{
		{"learning below threshold", StatusLearning, 2, StatusLearning, false},
		{"learning at threshold", StatusLearning, 3, StatusReviewing, true},
		{"learning far past both thresholds takes one step", StatusLearning, 20, StatusReviewing, true},
		{"reviewing below threshold", StatusReviewing, 7, StatusReviewing, false},
		{"reviewing at threshold", StatusReviewing, 8, StatusMastered, true},
		{"mastered is terminal", StatusMastered, 100, StatusMastered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, promoted := NextStatus(tt.status, tt.reviewCount, toReviewing, toMastered)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.promoted, promoted)
		})
	}
}

func TestNewUserWordState(t *testing.T) {
	s := NewUserWordState(7, 13)
	assert.Equal(t, StatusLearning, s.Status)
	assert.Equal(t, 0, s.ReviewCount)
	assert.Nil(t, s.MasteredAt)
	assert.False(t, s.FirstSeenAt.IsZero())
}
