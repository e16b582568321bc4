package service

import (
	"context"
	"fmt"
	"time"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

// AnswerResult describes what happened to a word after one answer.
type AnswerResult struct {
	Status      entities.WordStatus // status after any promotion
	ReviewCount int
	Promoted    bool // whether this answer triggered a promotion step
	Mastered    bool // whether the word just became mastered
}

// RecordAnswer logs one answered question and updates the word's learning
// state. Wrong answers are logged but never regress progress. A correct
// answer increments the review counter atomically at the storage layer and
// applies at most one promotion step; the reviewing stage is never skipped.
//
// Recording against a word the user has no state for fails with the
// repository's not-found error: an answer cannot create progress state.
func (s *LearningService) RecordAnswer(
	ctx context.Context,
	userID, wordID int64,
	kind entities.ExerciseKind,
	correct bool,
	latencyMs int64,
) (*AnswerResult, error) {
	state, err := s.wordStateRepo.Get(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}

	attempt := entities.NewExerciseAttempt(userID, wordID, kind, correct, latencyMs)
	if err := s.attemptRepo.Append(ctx, attempt); err != nil {
		return nil, err
	}

	if !correct {
		return &AnswerResult{Status: state.Status, ReviewCount: state.ReviewCount}, nil
	}

	status, count, err := s.wordStateRepo.IncrementReviewCount(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}

	next, promote := entities.NextStatus(status, count, s.cfg.LearningToReviewing, s.cfg.ReviewingToMastered)
	if !promote {
		return &AnswerResult{Status: status, ReviewCount: count}, nil
	}

	var masteredAt *time.Time
	if next == entities.StatusMastered {
		now := time.Now()
		masteredAt = &now
	}

	// Conditional on the pre-promotion status, so two overlapping answers
	// promote only once.
	applied, err := s.wordStateRepo.SetStatus(ctx, userID, wordID, status, next, masteredAt)
	if err != nil {
		return nil, err
	}
	if !applied {
		return &AnswerResult{Status: status, ReviewCount: count}, nil
	}

	result := &AnswerResult{
		Status:      next,
		ReviewCount: count,
		Promoted:    true,
		Mastered:    next == entities.StatusMastered,
	}

	if result.Mastered {
		if err := s.refreshMasteryCache(ctx, userID, wordID); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// refreshMasteryCache recomputes the cached mastery percentage after a word
// at the user's current level becomes mastered.
func (s *LearningService) refreshMasteryCache(ctx context.Context, userID, wordID int64) error {
	word, err := s.wordRepo.GetByID(ctx, wordID)
	if err != nil {
		return err
	}

	state, err := s.LevelState(ctx, userID)
	if err != nil {
		// No level state means nothing to refresh.
		return nil
	}
	if word.Level != state.CurrentLevel {
		return nil
	}

	mastery, err := s.Mastery(ctx, userID, state.CurrentLevel)
	if err != nil {
		return err
	}

	if err := s.levelRepo.UpdateMastery(ctx, userID, mastery); err != nil {
		return fmt.Errorf("update mastery cache: %w", err)
	}

	return nil
}
