package service

import (
	"context"
	"fmt"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

// SelectNewWords picks up to count unseen words for the user, splitting the
// batch between the given level and the next one according to the user's
// mastery. Words come back most common first (ascending frequency rank).
// When a level has fewer unseen words than requested, the result is simply
// shorter; an empty result means the level (and any next level) is exhausted.
func (s *LearningService) SelectNewWords(ctx context.Context, userID int64, level entities.Level, count int) ([]*entities.Word, error) {
	if count <= 0 {
		return nil, nil
	}

	mastery, err := s.Mastery(ctx, userID, level)
	if err != nil {
		return nil, err
	}

	currentCount, nextCount := s.policy.ForMastery(mastery).Counts(count)

	words := make([]*entities.Word, 0, count)

	if currentCount > 0 {
		current, err := s.wordRepo.FindUnseen(ctx, userID, level, currentCount)
		if err != nil {
			return nil, fmt.Errorf("find unseen at %s: %w", level, err)
		}
		words = append(words, current...)
	}

	nextLevel, ok := level.Next()
	if ok && nextCount > 0 {
		next, err := s.wordRepo.FindUnseen(ctx, userID, nextLevel, nextCount)
		if err != nil {
			return nil, fmt.Errorf("find unseen at %s: %w", nextLevel, err)
		}
		words = append(words, next...)
	}

	return words, nil
}

// AcceptWords creates the initial learning state for each presented word.
// The upsert is a no-op for words the user already has state for, so a
// double-tapped button never resets progress.
func (s *LearningService) AcceptWords(ctx context.Context, userID int64, words []*entities.Word) error {
	for _, w := range words {
		if err := s.wordStateRepo.UpsertLearning(ctx, userID, w.ID); err != nil {
			return fmt.Errorf("accept word %d: %w", w.ID, err)
		}
	}
	return nil
}

// DailyWordsResult is the outcome of one "give me words" interaction.
type DailyWordsResult struct {
	Advanced      bool           // whether the user just moved up a level
	PreviousLevel entities.Level // level before advancement, set when Advanced
	Level         entities.Level // level the words were selected for
	Mastery       int            // mastery shown to the user (pre-advancement value when Advanced)
	Words         []*entities.Word
}

// DailyWords runs the full daily delivery: the advancement gate first, then
// word selection against the (possibly new) level, then acceptance of the
// selected words.
func (s *LearningService) DailyWords(ctx context.Context, userID int64, count int) (*DailyWordsResult, error) {
	advance, err := s.CheckAdvance(ctx, userID)
	if err != nil {
		return nil, err
	}

	words, err := s.SelectNewWords(ctx, userID, advance.Level, count)
	if err != nil {
		return nil, err
	}

	if err := s.AcceptWords(ctx, userID, words); err != nil {
		return nil, err
	}

	return &DailyWordsResult{
		Advanced:      advance.Advanced,
		PreviousLevel: advance.PreviousLevel,
		Level:         advance.Level,
		Mastery:       advance.Mastery,
		Words:         words,
	}, nil
}
