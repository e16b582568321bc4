package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

func newTestExerciseService(store *memStore) *ExerciseService {
	return NewExerciseService(
		&fakeWordRepo{store: store},
		&fakeWordStateRepo{store: store},
		&fakeFlowRepo{store: store},
		newTestLearningService(store),
	)
}

func TestExerciseStart_NoWordsYet(t *testing.T) {
	store := newMemStore(levelWords(entities.LevelA1, 1, 5)...)
	svc := newTestExerciseService(store)

	_, err := svc.Start(context.Background(), testUserID)
	assert.ErrorIs(t, err, ErrNoWordsToExercise)
}

func TestExerciseStart_BuildsQuestionsOverRecentWords(t *testing.T) {
	words := levelWords(entities.LevelA1, 1, 8)
	store := newMemStore(words...)
	svc := newTestExerciseService(store)

	ctx := context.Background()
	learning := newTestLearningService(store)
	require.NoError(t, learning.AcceptWords(ctx, testUserID, words[:4]))

	flow, err := svc.Start(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, flow.Questions, 4)
	assert.Equal(t, 0, flow.Current)

	for _, q := range flow.Questions {
		word := store.words[q.WordID]
		require.NotNil(t, word)

		switch q.Kind {
		case entities.KindFlashcard:
			assert.Empty(t, q.Options)
			assert.Equal(t, word.Hebrew, q.Prompt)
			assert.Equal(t, word.Russian, q.CorrectAnswer)
		case entities.KindHebrewToRussian:
			assert.Equal(t, word.Hebrew, q.Prompt)
			assert.Equal(t, word.Russian, q.Options[q.CorrectIndex])
			assert.True(t, len(q.Options) >= 2)
		case entities.KindRussianToHebrew:
			assert.Equal(t, word.Russian, q.Prompt)
			assert.Equal(t, word.Hebrew, q.Options[q.CorrectIndex])
			assert.True(t, len(q.Options) >= 2)
		}
	}

	// The flow was persisted as the active exercise.
	assert.Same(t, flow, store.exercise)
}

func TestExerciseStart_ExcludesMasteredWords(t *testing.T) {
	words := levelWords(entities.LevelA1, 1, 4)
	store := newMemStore(words...)
	svc := newTestExerciseService(store)

	ctx := context.Background()
	learning := newTestLearningService(store)
	require.NoError(t, learning.AcceptWords(ctx, testUserID, words))
	store.states[1].Status = entities.StatusMastered
	store.states[2].Status = entities.StatusMastered

	flow, err := svc.Start(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, flow.Questions, 2)
	for _, q := range flow.Questions {
		assert.NotContains(t, []int64{1, 2}, q.WordID)
	}
}

func TestExerciseResume(t *testing.T) {
	words := levelWords(entities.LevelA1, 1, 3)
	store := newMemStore(words...)
	svc := newTestExerciseService(store)

	ctx := context.Background()
	_, err := svc.Resume(ctx, testUserID)
	assert.ErrorIs(t, err, ErrNoActiveExercise)

	learning := newTestLearningService(store)
	require.NoError(t, learning.AcceptWords(ctx, testUserID, words))
	started, err := svc.Start(ctx, testUserID)
	require.NoError(t, err)

	resumed, err := svc.Resume(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, started.Questions, resumed.Questions)
}

// fixedFlow installs an exercise flow with a single known question so
// answer handling can be tested deterministically.
func fixedFlow(store *memStore, questions ...entities.Question) *entities.ExerciseFlow {
	flow := entities.NewExerciseFlow(questions)
	store.exercise = flow
	return flow
}

func TestExerciseAnswer_CorrectChoice(t *testing.T) {
	words := levelWords(entities.LevelA1, 1, 2)
	store := newMemStore(words...)
	svc := newTestExerciseService(store)

	ctx := context.Background()
	learning := newTestLearningService(store)
	require.NoError(t, learning.AcceptWords(ctx, testUserID, words))

	fixedFlow(store,
		entities.Question{
			WordID:        1,
			Kind:          entities.KindHebrewToRussian,
			Prompt:        words[0].Hebrew,
			Options:       []string{"wrong", words[0].Russian},
			CorrectIndex:  1,
			CorrectAnswer: words[0].Russian,
		},
		entities.Question{
			WordID:        2,
			Kind:          entities.KindHebrewToRussian,
			Prompt:        words[1].Hebrew,
			Options:       []string{words[1].Russian, "wrong"},
			CorrectIndex:  0,
			CorrectAnswer: words[1].Russian,
		},
	)

	result, err := svc.Answer(ctx, testUserID, 0, 1)
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, entities.KindHebrewToRussian, result.Kind)
	assert.False(t, result.Done)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.Total)
	require.NotNil(t, result.Next)
	assert.Equal(t, int64(2), result.Next.WordID)

	// The answer went through the learning state machine.
	assert.Equal(t, 1, store.states[1].ReviewCount)
	require.Len(t, store.attempts, 1)
	assert.True(t, store.attempts[0].IsCorrect)
}

func TestExerciseAnswer_WrongChoice(t *testing.T) {
	words := levelWords(entities.LevelA1, 1, 1)
	store := newMemStore(words...)
	svc := newTestExerciseService(store)

	ctx := context.Background()
	learning := newTestLearningService(store)
	require.NoError(t, learning.AcceptWords(ctx, testUserID, words))

	fixedFlow(store, entities.Question{
		WordID:        1,
		Kind:          entities.KindHebrewToRussian,
		Prompt:        words[0].Hebrew,
		Options:       []string{"wrong", words[0].Russian},
		CorrectIndex:  1,
		CorrectAnswer: words[0].Russian,
	})

	result, err := svc.Answer(ctx, testUserID, 0, 0)
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, words[0].Russian, result.CorrectAnswer)
	assert.True(t, result.Done)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 0, store.states[1].ReviewCount)
}

func TestExerciseAnswer_FlashcardSelfAssessment(t *testing.T) {
	words := levelWords(entities.LevelA1, 1, 1)
	store := newMemStore(words...)
	svc := newTestExerciseService(store)

	ctx := context.Background()
	learning := newTestLearningService(store)
	require.NoError(t, learning.AcceptWords(ctx, testUserID, words))

	fixedFlow(store, entities.Question{
		WordID:        1,
		Kind:          entities.KindFlashcard,
		Prompt:        words[0].Hebrew,
		CorrectAnswer: words[0].Russian,
	})

	// 1 means "knew it".
	result, err := svc.Answer(ctx, testUserID, 0, 1)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 1, store.states[1].ReviewCount)
}

func TestExerciseAnswer_StaleQuestionRejected(t *testing.T) {
	words := levelWords(entities.LevelA1, 1, 1)
	store := newMemStore(words...)
	svc := newTestExerciseService(store)

	ctx := context.Background()
	learning := newTestLearningService(store)
	require.NoError(t, learning.AcceptWords(ctx, testUserID, words))

	fixedFlow(store, entities.Question{
		WordID:        1,
		Kind:          entities.KindFlashcard,
		Prompt:        words[0].Hebrew,
		CorrectAnswer: words[0].Russian,
	})

	_, err := svc.Answer(ctx, testUserID, 3, 1)
	assert.ErrorIs(t, err, ErrStaleAnswer)
	assert.Equal(t, 0, store.states[1].ReviewCount, "stale answers never score")
}

func TestExerciseAnswer_LastQuestionEndsSession(t *testing.T) {
	words := levelWords(entities.LevelA1, 1, 1)
	store := newMemStore(words...)
	svc := newTestExerciseService(store)

	ctx := context.Background()
	learning := newTestLearningService(store)
	require.NoError(t, learning.AcceptWords(ctx, testUserID, words))

	fixedFlow(store, entities.Question{
		WordID:        1,
		Kind:          entities.KindFlashcard,
		Prompt:        words[0].Hebrew,
		CorrectAnswer: words[0].Russian,
	})

	result, err := svc.Answer(ctx, testUserID, 0, 1)
	require.NoError(t, err)

	assert.True(t, result.Done)
	assert.Nil(t, result.Next)
	assert.Nil(t, store.exercise, "finished flow is deleted")

	_, err = svc.Answer(ctx, testUserID, 1, 0)
	assert.ErrorIs(t, err, ErrNoActiveExercise)
}
