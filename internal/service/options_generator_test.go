package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

func TestBuildOptions_CorrectIndexPointsAtAnswer(t *testing.T) {
	target := &entities.Word{ID: 1, Hebrew: "שלום", Russian: "привет", Level: entities.LevelA1}
	distractors := []*entities.Word{
		{ID: 2, Hebrew: "תודה", Russian: "спасибо", Level: entities.LevelA1},
		{ID: 3, Hebrew: "לילה", Russian: "ночь", Level: entities.LevelA1},
		{ID: 4, Hebrew: "מים", Russian: "вода", Level: entities.LevelA1},
	}

	for i := 0; i < 20; i++ {
		options, correctIndex := buildOptions(target, distractors, entities.KindHebrewToRussian)
		require.Len(t, options, 4)
		assert.Equal(t, "привет", options[correctIndex])
	}
}

func TestBuildOptions_HebrewSideForReverseQuestions(t *testing.T) {
	target := &entities.Word{ID: 1, Hebrew: "שלום", Russian: "привет", Level: entities.LevelA1}
	distractors := []*entities.Word{
		{ID: 2, Hebrew: "תודה", Russian: "спасибо", Level: entities.LevelA1},
	}

	options, correctIndex := buildOptions(target, distractors, entities.KindRussianToHebrew)
	assert.Equal(t, "שלום", options[correctIndex])
	assert.Contains(t, options, "תודה")
}

func TestBuildOptions_DropsDuplicateTexts(t *testing.T) {
	target := &entities.Word{ID: 1, Hebrew: "אור", Russian: "свет", Level: entities.LevelA1}
	distractors := []*entities.Word{
		{ID: 2, Hebrew: "נר", Russian: "свет", Level: entities.LevelA1}, // collides with the answer
		{ID: 3, Hebrew: "חושך", Russian: "тьма", Level: entities.LevelA1},
		{ID: 4, Hebrew: "צל", Russian: "тьма", Level: entities.LevelA1}, // collides with a distractor
	}

	options, correctIndex := buildOptions(target, distractors, entities.KindHebrewToRussian)
	require.Len(t, options, 2)
	assert.Equal(t, "свет", options[correctIndex])
}
