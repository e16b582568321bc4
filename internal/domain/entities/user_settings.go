package entities

import "time"

// WordsPerDayOptions are the allowed daily batch sizes.
var WordsPerDayOptions = []int{5, 7, 10}

// DefaultWordsPerDay is the batch size used until the user changes it.
const DefaultWordsPerDay = 5

// UserSettings stores user-specific learning preferences.
type UserSettings struct {
	UserID          int64
	WordsPerDay     int  // size of the daily word batch (5, 7 or 10)
	ReminderEnabled bool // whether the daily delivery reminder is on
	ReminderHourUTC int  // hour of day (UTC) at which the daily batch is sent
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUserSettings creates a UserSettings instance with default values.
func NewUserSettings(userID int64) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:          userID,
		WordsPerDay:     DefaultWordsPerDay,
		ReminderEnabled: true,
		ReminderHourUTC: 9,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ValidWordsPerDay reports whether n is an allowed daily batch size.
func ValidWordsPerDay(n int) bool {
	for _, opt := range WordsPerDayOptions {
		if n == opt {
			return true
		}
	}
	return false
}
