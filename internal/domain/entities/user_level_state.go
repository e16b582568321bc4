package entities

import "time"

// UserLevelState holds a user's current CEFR level and the cached mastery
// percentage for that level. The percentage is always recomputable from
// word states; the cached copy exists for cheap progress displays.
type UserLevelState struct {
	UserID         int64
	CurrentLevel   Level
	MasteryPercent int // 0-100
	UpdatedAt      time.Time
}

// NewUserLevelState creates a level state for a freshly assessed user.
func NewUserLevelState(userID int64, level Level) *UserLevelState {
	return &UserLevelState{
		UserID:         userID,
		CurrentLevel:   level,
		MasteryPercent: 0,
	}
}
