package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistributionPolicy_ForMastery(t *testing.T) {
	policy := NewDistributionPolicy(testLearningConfig())

	tests := []struct {
		name    string
		mastery int
		want    Distribution
	}{
		{"zero mastery", 0, Distribution{1.00, 0.00}},
		{"just below preview", 49, Distribution{1.00, 0.00}},
		{"preview boundary", 50, Distribution{0.85, 0.15}},
		{"just below gradual", 64, Distribution{0.85, 0.15}},
		{"gradual boundary", 65, Distribution{0.70, 0.30}},
		{"just below balanced", 79, Distribution{0.70, 0.30}},
		{"balanced boundary", 80, Distribution{0.50, 0.50}},
		{"just below advanced", 89, Distribution{0.50, 0.50}},
		{"advanced boundary", 90, Distribution{0.30, 0.70}},
		{"full mastery", 100, Distribution{0.30, 0.70}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.ForMastery(tt.mastery)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, 1.0, got.CurrentShare+got.NextShare, 1e-9)
		})
	}
}

func TestDistribution_Counts(t *testing.T) {
	tests := []struct {
		name        string
		d           Distribution
		total       int
		wantCurrent int
		wantNext    int
	}{
		{"all current", Distribution{1.00, 0.00}, 5, 5, 0},
		{"85/15 of five", Distribution{0.85, 0.15}, 5, 4, 1},
		{"70/30 of five", Distribution{0.70, 0.30}, 5, 4, 1},
		{"70/30 of seven", Distribution{0.70, 0.30}, 7, 5, 2},
		{"50/50 of five rounds up", Distribution{0.50, 0.50}, 5, 3, 2},
		{"50/50 of ten", Distribution{0.50, 0.50}, 10, 5, 5},
		{"30/70 of ten", Distribution{0.30, 0.70}, 10, 3, 7},
		{"zero total", Distribution{0.50, 0.50}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, next := tt.d.Counts(tt.total)
			assert.Equal(t, tt.wantCurrent, current)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.total, current+next, "counts must sum to total")
		})
	}
}
