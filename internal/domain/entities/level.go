// Package entities contains domain entities used across the application.
package entities

import "fmt"

// Level is a CEFR proficiency level.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// Levels is the ordered table of CEFR levels, lowest first.
// Every place that needs "next level" or a level index consults this table.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// ParseLevel converts a string into a Level.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level: %q", s)
}

// Index returns the position of the level in the ordered table, or -1 if unknown.
func (l Level) Index() int {
	for i, lvl := range Levels {
		if lvl == l {
			return i
		}
	}
	return -1
}

// Next returns the level following l. The second return value is false
// when l is the highest level or unknown.
func (l Level) Next() (Level, bool) {
	i := l.Index()
	if i < 0 || i+1 >= len(Levels) {
		return "", false
	}
	return Levels[i+1], true
}

// IsMax reports whether l is the highest level in the table.
func (l Level) IsMax() bool {
	return l.Index() == len(Levels)-1
}
