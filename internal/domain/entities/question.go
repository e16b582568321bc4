package entities

// Question is one exercise question shown to the user.
type Question struct {
	WordID        int64
	Kind          ExerciseKind
	Prompt        string
	Options       []string // multiple choice options; empty for flashcards
	CorrectIndex  int
	CorrectAnswer string
}
