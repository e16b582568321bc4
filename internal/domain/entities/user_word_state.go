package entities

import "time"

// WordStatus is the learning status of a word for a particular user.
type WordStatus string

const (
	StatusLearning  WordStatus = "learning"  // word has been presented, not yet reinforced
	StatusReviewing WordStatus = "reviewing" // word answered correctly enough to enter review
	StatusMastered  WordStatus = "mastered"  // word permanently learned
)

// UserWordState tracks one user's progress on one word.
// At most one record exists per (user, word) pair; it is created the first
// time the word is presented and mutated only by answer recording.
type UserWordState struct {
	UserID      int64
	WordID      int64
	Status      WordStatus
	ReviewCount int // correct answers counted toward promotion
	FirstSeenAt time.Time
	MasteredAt  *time.Time // set only on transition into mastered
}

// NewUserWordState creates the initial state for a freshly presented word.
func NewUserWordState(userID, wordID int64) *UserWordState {
	return &UserWordState{
		UserID:      userID,
		WordID:      wordID,
		Status:      StatusLearning,
		ReviewCount: 0,
		FirstSeenAt: time.Now(),
	}
}

// NextStatus returns the status the word should be promoted to given the
// current status and review count, applying at most one promotion step.
// The reviewing stage is mandatory: a word never jumps from learning
// straight to mastered even if both thresholds are already satisfied.
// The second return value is false when no promotion applies.
func NextStatus(status WordStatus, reviewCount, toReviewing, toMastered int) (WordStatus, bool) {
	switch {
	case status == StatusLearning && reviewCount >= toReviewing:
		return StatusReviewing, true
	case status == StatusReviewing && reviewCount >= toMastered:
		return StatusMastered, true
	default:
		return status, false
	}
}
