package entities

import "time"

// ExerciseKind identifies the type of an exercise question.
type ExerciseKind string

const (
	KindHebrewToRussian ExerciseKind = "he_ru"     // choose the Russian translation of a Hebrew word
	KindRussianToHebrew ExerciseKind = "ru_he"     // choose the Hebrew word for a Russian translation
	KindFlashcard       ExerciseKind = "flashcard" // self-assessed flashcard ("knew it" / "didn't")
)

// ExerciseAttempt is an append-only log record of one answered question.
// Attempts are never mutated or deleted.
type ExerciseAttempt struct {
	ID         int64
	UserID     int64
	WordID     int64
	Kind       ExerciseKind
	IsCorrect  bool
	LatencyMs  int64 // time between question shown and answer received
	AnsweredAt time.Time
}

// NewExerciseAttempt creates an attempt record stamped with the current time.
func NewExerciseAttempt(userID, wordID int64, kind ExerciseKind, correct bool, latencyMs int64) *ExerciseAttempt {
	return &ExerciseAttempt{
		UserID:     userID,
		WordID:     wordID,
		Kind:       kind,
		IsCorrect:  correct,
		LatencyMs:  latencyMs,
		AnsweredAt: time.Now(),
	}
}
