package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/levkar/milim-bot/internal/config"
	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres/repository"
)

// ErrNoLevelAssigned is returned when a user has no level state yet,
// i.e. the placement assessment has not been completed.
var ErrNoLevelAssigned = errors.New("no level assigned")

// LearningService is the progressive learning state machine: it decides
// which words a user gets, scores their answers, and advances their level.
type LearningService struct {
	wordRepo      WordRepository
	wordStateRepo WordStateRepository
	attemptRepo   AttemptRepository
	levelRepo     LevelStateRepository
	policy        *DistributionPolicy
	cfg           config.Learning
}

// NewLearningService creates a LearningService with the given repositories
// and threshold configuration.
func NewLearningService(
	wordRepo WordRepository,
	wordStateRepo WordStateRepository,
	attemptRepo AttemptRepository,
	levelRepo LevelStateRepository,
	cfg config.Learning,
) *LearningService {
	return &LearningService{
		wordRepo:      wordRepo,
		wordStateRepo: wordStateRepo,
		attemptRepo:   attemptRepo,
		levelRepo:     levelRepo,
		policy:        NewDistributionPolicy(cfg),
		cfg:           cfg,
	}
}

// Mastery computes the user's mastery percentage for a level: the share of
// all words at that level the user has mastered, rounded to an integer.
// A level with no words yields 0.
func (s *LearningService) Mastery(ctx context.Context, userID int64, level entities.Level) (int, error) {
	total, err := s.wordRepo.CountAtLevel(ctx, level)
	if err != nil {
		return 0, fmt.Errorf("count total words: %w", err)
	}
	if total == 0 {
		return 0, nil
	}

	mastered, err := s.wordStateRepo.CountMastered(ctx, userID, level)
	if err != nil {
		return 0, fmt.Errorf("count mastered words: %w", err)
	}

	return int(math.Round(100 * float64(mastered) / float64(total))), nil
}

// LevelState returns the user's current level state.
func (s *LearningService) LevelState(ctx context.Context, userID int64) (*entities.UserLevelState, error) {
	state, err := s.levelRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrLevelStateNotFound) {
			return nil, ErrNoLevelAssigned
		}
		return nil, err
	}
	return state, nil
}

// AssignLevel sets the user's level, resetting cached mastery.
// Called after the placement assessment.
func (s *LearningService) AssignLevel(ctx context.Context, userID int64, level entities.Level) error {
	return s.levelRepo.Set(ctx, userID, level, 0)
}
