package service

import (
	"context"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

// AdvanceResult is the outcome of the level advancement gate.
type AdvanceResult struct {
	Advanced      bool
	PreviousLevel entities.Level // set when Advanced
	Level         entities.Level // level after the check (new level when Advanced)
	Mastery       int            // mastery of the checked level (pre-advancement value when Advanced)
}

// CheckAdvance moves the user up one level when mastery of the current
// level has crossed the auto-advance threshold. At the highest level the
// gate never triggers; that is a terminal state, not an error. The returned
// mastery is always the value computed for the level that was checked, so
// the caller can show "you mastered 96% of B1" after an advancement.
func (s *LearningService) CheckAdvance(ctx context.Context, userID int64) (*AdvanceResult, error) {
	state, err := s.LevelState(ctx, userID)
	if err != nil {
		return nil, err
	}

	mastery, err := s.Mastery(ctx, userID, state.CurrentLevel)
	if err != nil {
		return nil, err
	}

	next, hasNext := state.CurrentLevel.Next()
	if mastery >= s.cfg.AutoAdvanceThreshold && hasNext {
		if err := s.levelRepo.Set(ctx, userID, next, 0); err != nil {
			return nil, err
		}
		return &AdvanceResult{
			Advanced:      true,
			PreviousLevel: state.CurrentLevel,
			Level:         next,
			Mastery:       mastery,
		}, nil
	}

	// Keep the cached percentage in step with live state.
	if mastery != state.MasteryPercent {
		if err := s.levelRepo.UpdateMastery(ctx, userID, mastery); err != nil {
			return nil, err
		}
	}

	return &AdvanceResult{Level: state.CurrentLevel, Mastery: mastery}, nil
}
