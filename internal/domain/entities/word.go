package entities

// Word represents one Hebrew vocabulary entry with its Russian translation.
// Words are created by the seeding process and are immutable afterwards.
type Word struct {
	ID              int64  // unique word ID
	Hebrew          string // Hebrew spelling (with niqqud where available)
	Transliteration string // Russian transliteration of the Hebrew form
	Russian         string // Russian translation
	Level           Level  // CEFR level the word belongs to
	FrequencyRank   int    // lower rank = more common; default introduction order
}
