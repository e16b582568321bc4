package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/service"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", progressBar(0))
	assert.Equal(t, "▓▓▓▓▓░░░░░", progressBar(50))
	assert.Equal(t, "▓▓▓▓▓░░░░░", progressBar(59))
	assert.Equal(t, "▓▓▓▓▓▓▓▓▓▓", progressBar(100))
}

func TestFormatDailyWords(t *testing.T) {
	result := &service.DailyWordsResult{
		Level:   entities.LevelB1,
		Mastery: 42,
		Words: []*entities.Word{
			{Hebrew: "שלום", Transliteration: "шалом", Russian: "привет", Level: entities.LevelB1},
		},
	}

	text := formatDailyWords(result)
	assert.Contains(t, text, "B1")
	assert.Contains(t, text, "42%")
	assert.Contains(t, text, "שלום")
	assert.Contains(t, text, "привет")
	assert.NotContains(t, text, "Поздравляем")
}

func TestFormatDailyWords_Advancement(t *testing.T) {
	result := &service.DailyWordsResult{
		Advanced:      true,
		PreviousLevel: entities.LevelA2,
		Level:         entities.LevelB1,
		Mastery:       96,
		Words: []*entities.Word{
			{Hebrew: "מים", Transliteration: "маим", Russian: "вода", Level: entities.LevelB1},
		},
	}

	text := formatDailyWords(result)
	assert.Contains(t, text, "Поздравляем")
	assert.Contains(t, text, "A2")
	assert.Contains(t, text, "B1")
}

func TestFormatDailyWords_ExhaustedLevel(t *testing.T) {
	result := &service.DailyWordsResult{Level: entities.LevelC2, Mastery: 80}

	text := formatDailyWords(result)
	assert.Contains(t, text, "не осталось новых слов")
	assert.Contains(t, text, "/exercise")
}

func TestFormatExerciseSummary(t *testing.T) {
	assert.Contains(t, formatExerciseSummary(10, 10), "Идеально")
	assert.Contains(t, formatExerciseSummary(5, 10), "Хороший результат")
	assert.Contains(t, formatExerciseSummary(2, 10), "Повторите")
}

func TestFormatAnswerFeedback_Flashcard(t *testing.T) {
	word := &entities.Word{Hebrew: "שלום", Transliteration: "шалом", Russian: "привет"}

	knew := formatAnswerFeedback(entities.KindFlashcard, &service.ExerciseAnswerResult{
		Kind:    entities.KindFlashcard,
		Correct: true,
		Word:    word,
	})
	assert.Contains(t, knew, "привет", "flashcards always reveal the translation")

	forgot := formatAnswerFeedback(entities.KindFlashcard, &service.ExerciseAnswerResult{
		Kind: entities.KindFlashcard,
		Word: word,
	})
	assert.Contains(t, forgot, "Запомните")
	assert.Contains(t, forgot, "привет")
}

func TestFormatAnswerFeedback_Mastered(t *testing.T) {
	text := formatAnswerFeedback(entities.KindHebrewToRussian, &service.ExerciseAnswerResult{
		Correct:    true,
		WordResult: &service.AnswerResult{Mastered: true},
	})
	assert.Contains(t, text, "освоено")
}

func TestCallbackDataRoundtrip(t *testing.T) {
	raw := buildExerciseAnswerCallback(3, 1)
	data := decodeCallback(raw)

	assert.Equal(t, actionExercise, data.Action)
	q, a, ok := parseAnswerParams(data.Params)
	assert.True(t, ok)
	assert.Equal(t, 3, q)
	assert.Equal(t, 1, a)
}

func TestParseAnswerParams_Invalid(t *testing.T) {
	cases := [][]string{
		{},
		{"1"},
		{"1", "2", "3"},
		{"x", "1"},
		{"1", "y"},
		{"-1", "0"},
	}
	for _, params := range cases {
		_, _, ok := parseAnswerParams(params)
		assert.False(t, ok, "params %v", params)
	}
}
