package service

import (
	"math/rand"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

// optionText returns the answer-side text of a word for an exercise kind.
func optionText(w *entities.Word, kind entities.ExerciseKind) string {
	if kind == entities.KindRussianToHebrew {
		return w.Hebrew
	}
	return w.Russian
}

// buildOptions assembles shuffled multiple choice options from the target
// word and its distractors and returns the index of the correct one.
// Duplicate option texts are dropped, so the result can be shorter than
// 1+len(distractors) when distractor translations collide.
func buildOptions(target *entities.Word, distractors []*entities.Word, kind entities.ExerciseKind) ([]string, int) {
	correct := optionText(target, kind)

	options := make([]string, 0, 1+len(distractors))
	options = append(options, correct)

	seen := map[string]struct{}{correct: {}}
	for _, d := range distractors {
		text := optionText(d, kind)
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		options = append(options, text)
	}

	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := 0
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	return options, correctIndex
}
