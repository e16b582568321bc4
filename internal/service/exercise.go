package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

var (
	ErrNoWordsToExercise = errors.New("no words to exercise")
	ErrNoActiveExercise  = errors.New("no active exercise")
	ErrStaleAnswer       = errors.New("answer for a question that is not current")
)

const (
	exerciseLength  = 10 // words per session, fewer when the user has fewer
	distractorCount = 3
	flashcardWeight = 2  // flashcards appear half as often as each choice kind
)

var choiceKinds = []entities.ExerciseKind{
	entities.KindHebrewToRussian,
	entities.KindRussianToHebrew,
}

// ExerciseService builds multiple-choice and flashcard sessions over the
// words a user is currently learning and routes every answer through the
// learning state machine.
type ExerciseService struct {
	wordRepo      WordRepository
	wordStateRepo WordStateRepository
	flowRepo      FlowRepository
	learning      *LearningService
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(
	wordRepo WordRepository,
	wordStateRepo WordStateRepository,
	flowRepo FlowRepository,
	learning *LearningService,
) *ExerciseService {
	return &ExerciseService{
		wordRepo:      wordRepo,
		wordStateRepo: wordStateRepo,
		flowRepo:      flowRepo,
		learning:      learning,
	}
}

// Start builds a new exercise flow over the user's most recently presented
// not-yet-mastered words, replacing any abandoned session.
func (s *ExerciseService) Start(ctx context.Context, userID int64) (*entities.ExerciseFlow, error) {
	ids, err := s.wordStateRepo.RecentWordIDs(ctx, userID, exerciseLength)
	if err != nil {
		return nil, fmt.Errorf("recent words: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrNoWordsToExercise
	}

	words, err := s.wordRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}

	questions := make([]entities.Question, 0, len(ids))
	for _, id := range ids {
		w, ok := words[id]
		if !ok {
			continue
		}

		q, err := s.buildQuestion(ctx, w)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	if len(questions) == 0 {
		return nil, ErrNoWordsToExercise
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	flow := entities.NewExerciseFlow(questions)
	if err := s.flowRepo.SaveExercise(ctx, userID, flow); err != nil {
		return nil, err
	}

	return flow, nil
}

// Resume returns the user's active exercise flow, if any.
func (s *ExerciseService) Resume(ctx context.Context, userID int64) (*entities.ExerciseFlow, error) {
	flow, err := s.flowRepo.GetExercise(ctx, userID)
	if err != nil {
		return nil, ErrNoActiveExercise
	}
	if flow.Done() {
		return nil, ErrNoActiveExercise
	}
	return flow, nil
}

// ExerciseAnswerResult describes the outcome of one answered question.
type ExerciseAnswerResult struct {
	Kind          entities.ExerciseKind // kind of the answered question
	Correct       bool
	CorrectAnswer string
	Word          *entities.Word
	WordResult    *AnswerResult // promotion outcome for the word
	Done          bool
	CorrectCount  int
	Total         int
	Next          *entities.Question // nil when Done
}

// Answer processes the user's answer to question questionIndex. For
// multiple-choice questions selectedIndex is the chosen option; for
// flashcards 1 means "knew it" and 0 means "didn't".
func (s *ExerciseService) Answer(ctx context.Context, userID int64, questionIndex, selectedIndex int) (*ExerciseAnswerResult, error) {
	flow, err := s.flowRepo.GetExercise(ctx, userID)
	if err != nil {
		return nil, ErrNoActiveExercise
	}

	// A slow double tap produces a callback for an already answered
	// question; ignore it rather than scoring the word twice.
	if questionIndex != flow.Current {
		return nil, ErrStaleAnswer
	}

	q := flow.CurrentQuestion()
	if q == nil {
		return nil, ErrNoActiveExercise
	}

	var correct bool
	if q.Kind == entities.KindFlashcard {
		correct = selectedIndex == 1
	} else {
		correct = selectedIndex == q.CorrectIndex
	}

	latency := time.Since(flow.AskedAt).Milliseconds()
	if latency < 0 {
		latency = 0
	}

	wordResult, err := s.learning.RecordAnswer(ctx, userID, q.WordID, q.Kind, correct, latency)
	if err != nil {
		return nil, err
	}

	word, err := s.wordRepo.GetByID(ctx, q.WordID)
	if err != nil {
		return nil, err
	}

	result := &ExerciseAnswerResult{
		Kind:          q.Kind,
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Word:          word,
		WordResult:    wordResult,
		Total:         len(flow.Questions),
	}

	flow.Advance(correct)
	result.CorrectCount = flow.Correct

	if flow.Done() {
		result.Done = true
		if err := s.flowRepo.Delete(ctx, userID, entities.FlowExercise); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := s.flowRepo.SaveExercise(ctx, userID, flow); err != nil {
		return nil, err
	}
	result.Next = flow.CurrentQuestion()

	return result, nil
}

// buildQuestion creates one question for a word, choosing the kind at
// random and drawing distractors from the word's own level.
func (s *ExerciseService) buildQuestion(ctx context.Context, w *entities.Word) (*entities.Question, error) {
	kind := s.randomKind()

	if kind == entities.KindFlashcard {
		return &entities.Question{
			WordID:        w.ID,
			Kind:          kind,
			Prompt:        w.Hebrew,
			CorrectAnswer: w.Russian,
		}, nil
	}

	distractors, err := s.wordRepo.GetRandomAtLevel(ctx, w.Level, w.ID, distractorCount)
	if err != nil {
		return nil, fmt.Errorf("distractors for word %d: %w", w.ID, err)
	}

	options, correctIndex := buildOptions(w, distractors, kind)

	prompt := w.Hebrew
	if kind == entities.KindRussianToHebrew {
		prompt = w.Russian
	}

	return &entities.Question{
		WordID:        w.ID,
		Kind:          kind,
		Prompt:        prompt,
		Options:       options,
		CorrectIndex:  correctIndex,
		CorrectAnswer: options[correctIndex],
	}, nil
}

func (s *ExerciseService) randomKind() entities.ExerciseKind {
	// Each choice kind is twice as likely as a flashcard.
	n := rand.Intn(len(choiceKinds)*flashcardWeight + 1)
	if n < len(choiceKinds)*flashcardWeight {
		return choiceKinds[n%len(choiceKinds)]
	}
	return entities.KindFlashcard
}
