package service

import (
	"context"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

// ProgressSummary is the material for the /progress view.
type ProgressSummary struct {
	Level      entities.Level
	Mastery    int // live mastery percentage of the current level
	TotalWords int // all words at the level
	Learning   int
	Reviewing  int
	Mastered   int
	NextShare  int // percentage of the daily batch drawn from the next level
}

// ProgressSummary gathers the user's progress at their current level.
func (s *LearningService) ProgressSummary(ctx context.Context, userID int64) (*ProgressSummary, error) {
	state, err := s.LevelState(ctx, userID)
	if err != nil {
		return nil, err
	}

	mastery, err := s.Mastery(ctx, userID, state.CurrentLevel)
	if err != nil {
		return nil, err
	}

	total, err := s.wordRepo.CountAtLevel(ctx, state.CurrentLevel)
	if err != nil {
		return nil, err
	}

	counts, err := s.wordStateRepo.CountByStatus(ctx, userID, state.CurrentLevel)
	if err != nil {
		return nil, err
	}

	dist := s.policy.ForMastery(mastery)

	return &ProgressSummary{
		Level:      state.CurrentLevel,
		Mastery:    mastery,
		TotalWords: total,
		Learning:   counts.Learning,
		Reviewing:  counts.Reviewing,
		Mastered:   counts.Mastered,
		NextShare:  int(dist.NextShare * 100),
	}, nil
}
