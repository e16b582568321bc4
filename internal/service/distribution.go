package service

import (
	"math"

	"github.com/levkar/milim-bot/internal/config"
)

// Distribution is the split of a word batch between the user's current
// level and the next one. The two shares always sum to exactly 1.
type Distribution struct {
	CurrentShare float64
	NextShare    float64
}

// Counts converts the shares into word counts. The next-level count is the
// remainder after rounding, so the two counts always sum to total.
func (d Distribution) Counts(total int) (current, next int) {
	if total <= 0 {
		return 0, 0
	}
	current = int(math.Round(float64(total) * d.CurrentShare))
	next = total - current
	return current, next
}

// DistributionPolicy maps a mastery percentage to a batch distribution.
// It is a monotonic step function: the higher the mastery of the current
// level, the larger the share of next-level words.
type DistributionPolicy struct {
	preview  int // below this, only current-level words
	gradual  int
	balanced int
	advanced int
}

// NewDistributionPolicy creates a policy with the configured thresholds.
func NewDistributionPolicy(cfg config.Learning) *DistributionPolicy {
	return &DistributionPolicy{
		preview:  cfg.PreviewThreshold,
		gradual:  cfg.GradualThreshold,
		balanced: cfg.BalancedThreshold,
		advanced: cfg.AdvancedThreshold,
	}
}

// ForMastery returns the distribution for a mastery percentage.
// Bins are half-open: inclusive on the lower bound, exclusive on the upper.
func (p *DistributionPolicy) ForMastery(masteryPercent int) Distribution {
	switch {
	case masteryPercent < p.preview:
		return Distribution{CurrentShare: 1.00, NextShare: 0.00}
	case masteryPercent < p.gradual:
		return Distribution{CurrentShare: 0.85, NextShare: 0.15}
	case masteryPercent < p.balanced:
		return Distribution{CurrentShare: 0.70, NextShare: 0.30}
	case masteryPercent < p.advanced:
		return Distribution{CurrentShare: 0.50, NextShare: 0.50}
	default:
		return Distribution{CurrentShare: 0.30, NextShare: 0.70}
	}
}
