package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/levkar/milim-bot/internal/config"
	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres/repository"
)

// memStore is shared in-memory state behind the fake repositories. The
// fakes model a single user, which is all the service tests need.
type memStore struct {
	words      map[int64]*entities.Word
	states     map[int64]*entities.UserWordState // keyed by word ID
	stateOrder []int64                           // insertion order, oldest first
	attempts   []*entities.ExerciseAttempt
	level      *entities.UserLevelState

	exercise   *entities.ExerciseFlow
	assessment *entities.AssessmentFlow
}

func newMemStore(words ...*entities.Word) *memStore {
	m := &memStore{
		words:  make(map[int64]*entities.Word),
		states: make(map[int64]*entities.UserWordState),
	}
	for _, w := range words {
		m.words[w.ID] = w
	}
	return m
}

func (m *memStore) wordsAtLevel(level entities.Level) []*entities.Word {
	var out []*entities.Word
	for _, w := range m.words {
		if w.Level == level {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FrequencyRank != out[j].FrequencyRank {
			return out[i].FrequencyRank < out[j].FrequencyRank
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type fakeWordRepo struct{ store *memStore }

func (r *fakeWordRepo) GetByID(_ context.Context, wordID int64) (*entities.Word, error) {
	w, ok := r.store.words[wordID]
	if !ok {
		return nil, repository.ErrWordNotFound
	}
	return w, nil
}

func (r *fakeWordRepo) GetByIDs(_ context.Context, wordIDs []int64) (map[int64]*entities.Word, error) {
	out := make(map[int64]*entities.Word)
	for _, id := range wordIDs {
		if w, ok := r.store.words[id]; ok {
			out[id] = w
		}
	}
	return out, nil
}

func (r *fakeWordRepo) CountAtLevel(_ context.Context, level entities.Level) (int, error) {
	return len(r.store.wordsAtLevel(level)), nil
}

func (r *fakeWordRepo) FindUnseen(_ context.Context, _ int64, level entities.Level, limit int) ([]*entities.Word, error) {
	var out []*entities.Word
	for _, w := range r.store.wordsAtLevel(level) {
		if _, seen := r.store.states[w.ID]; seen {
			continue
		}
		out = append(out, w)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeWordRepo) GetRandomAtLevel(_ context.Context, level entities.Level, exceptID int64, limit int) ([]*entities.Word, error) {
	var out []*entities.Word
	for _, w := range r.store.wordsAtLevel(level) {
		if w.ID == exceptID {
			continue
		}
		out = append(out, w)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeWordStateRepo struct{ store *memStore }

func (r *fakeWordStateRepo) UpsertLearning(_ context.Context, userID, wordID int64) error {
	if _, ok := r.store.states[wordID]; ok {
		return nil
	}
	r.store.states[wordID] = entities.NewUserWordState(userID, wordID)
	r.store.stateOrder = append(r.store.stateOrder, wordID)
	return nil
}

func (r *fakeWordStateRepo) Get(_ context.Context, _, wordID int64) (*entities.UserWordState, error) {
	s, ok := r.store.states[wordID]
	if !ok {
		return nil, repository.ErrWordStateNotFound
	}
	return s, nil
}

func (r *fakeWordStateRepo) IncrementReviewCount(_ context.Context, _, wordID int64) (entities.WordStatus, int, error) {
	s, ok := r.store.states[wordID]
	if !ok {
		return "", 0, repository.ErrWordStateNotFound
	}
	s.ReviewCount++
	return s.Status, s.ReviewCount, nil
}

func (r *fakeWordStateRepo) SetStatus(_ context.Context, _, wordID int64, from, to entities.WordStatus, masteredAt *time.Time) (bool, error) {
	s, ok := r.store.states[wordID]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	s.MasteredAt = masteredAt
	return true, nil
}

func (r *fakeWordStateRepo) CountMastered(_ context.Context, _ int64, level entities.Level) (int, error) {
	count := 0
	for wordID, s := range r.store.states {
		w, ok := r.store.words[wordID]
		if ok && w.Level == level && s.Status == entities.StatusMastered {
			count++
		}
	}
	return count, nil
}

func (r *fakeWordStateRepo) CountByStatus(_ context.Context, _ int64, level entities.Level) (*repository.StatusCounts, error) {
	var counts repository.StatusCounts
	for wordID, s := range r.store.states {
		w, ok := r.store.words[wordID]
		if !ok || w.Level != level {
			continue
		}
		switch s.Status {
		case entities.StatusLearning:
			counts.Learning++
		case entities.StatusReviewing:
			counts.Reviewing++
		case entities.StatusMastered:
			counts.Mastered++
		}
	}
	return &counts, nil
}

func (r *fakeWordStateRepo) RecentWordIDs(_ context.Context, _ int64, limit int) ([]int64, error) {
	var out []int64
	// Newest first, mastered words excluded.
	for i := len(r.store.stateOrder) - 1; i >= 0; i-- {
		wordID := r.store.stateOrder[i]
		if r.store.states[wordID].Status == entities.StatusMastered {
			continue
		}
		out = append(out, wordID)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeAttemptRepo struct{ store *memStore }

func (r *fakeAttemptRepo) Append(_ context.Context, a *entities.ExerciseAttempt) error {
	r.store.attempts = append(r.store.attempts, a)
	return nil
}

type fakeLevelStateRepo struct{ store *memStore }

func (r *fakeLevelStateRepo) Get(_ context.Context, _ int64) (*entities.UserLevelState, error) {
	if r.store.level == nil {
		return nil, repository.ErrLevelStateNotFound
	}
	return r.store.level, nil
}

func (r *fakeLevelStateRepo) Set(_ context.Context, userID int64, level entities.Level, masteryPercent int) error {
	r.store.level = &entities.UserLevelState{
		UserID:         userID,
		CurrentLevel:   level,
		MasteryPercent: masteryPercent,
	}
	return nil
}

func (r *fakeLevelStateRepo) UpdateMastery(_ context.Context, _ int64, masteryPercent int) error {
	if r.store.level != nil {
		r.store.level.MasteryPercent = masteryPercent
	}
	return nil
}

type fakeFlowRepo struct{ store *memStore }

func (r *fakeFlowRepo) SaveExercise(_ context.Context, _ int64, flow *entities.ExerciseFlow) error {
	r.store.exercise = flow
	return nil
}

func (r *fakeFlowRepo) SaveAssessment(_ context.Context, _ int64, flow *entities.AssessmentFlow) error {
	r.store.assessment = flow
	return nil
}

func (r *fakeFlowRepo) GetExercise(_ context.Context, _ int64) (*entities.ExerciseFlow, error) {
	if r.store.exercise == nil {
		return nil, repository.ErrFlowNotFound
	}
	return r.store.exercise, nil
}

func (r *fakeFlowRepo) GetAssessment(_ context.Context, _ int64) (*entities.AssessmentFlow, error) {
	if r.store.assessment == nil {
		return nil, repository.ErrFlowNotFound
	}
	return r.store.assessment, nil
}

func (r *fakeFlowRepo) Delete(_ context.Context, _ int64, kind entities.FlowKind) error {
	switch kind {
	case entities.FlowExercise:
		r.store.exercise = nil
	case entities.FlowAssessment:
		r.store.assessment = nil
	}
	return nil
}

func testLearningConfig() config.Learning {
	return config.Learning{
		PreviewThreshold:     50,
		GradualThreshold:     65,
		BalancedThreshold:    80,
		AdvancedThreshold:    90,
		AutoAdvanceThreshold: 95,
		LearningToReviewing:  3,
		ReviewingToMastered:  8,
	}
}

func newTestLearningService(store *memStore) *LearningService {
	return NewLearningService(
		&fakeWordRepo{store: store},
		&fakeWordStateRepo{store: store},
		&fakeAttemptRepo{store: store},
		&fakeLevelStateRepo{store: store},
		testLearningConfig(),
	)
}

// levelWords builds count words at the given level with IDs and frequency
// ranks starting from startID.
func levelWords(level entities.Level, startID int64, count int) []*entities.Word {
	words := make([]*entities.Word, 0, count)
	for i := 0; i < count; i++ {
		id := startID + int64(i)
		words = append(words, &entities.Word{
			ID:            id,
			Hebrew:        fmt.Sprintf("hebrew-%s-%d", level, id),
			Russian:       fmt.Sprintf("russian-%s-%d", level, id),
			Level:         level,
			FrequencyRank: int(id),
		})
	}
	return words
}
