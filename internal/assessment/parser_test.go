package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

const validResponse = `{
	"questions": [
		{
			"prompt": "Что значит слово שלום?",
			"options": ["привет", "спасибо", "пожалуйста", "до свидания"],
			"correct_index": 0,
			"level": "A1"
		},
		{
			"prompt": "Что значит слово הצלחה?",
			"options": ["провал", "успех", "попытка", "начало"],
			"correct_index": 1,
			"level": "B1"
		}
	]
}`

func TestParseResponse_Valid(t *testing.T) {
	questions, err := ParseResponse(validResponse)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "Что значит слово שלום?", questions[0].Prompt)
	assert.Equal(t, 0, questions[0].CorrectIndex)
	assert.Equal(t, entities.LevelA1, questions[0].Level)
	assert.Equal(t, entities.LevelB1, questions[1].Level)
}

func TestParseResponse_StripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validResponse + "\n```"
	questions, err := ParseResponse(fenced)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "the model rambled instead"},
		{"empty set", `{"questions": []}`},
		{"empty prompt", `{"questions": [{"prompt": " ", "options": ["а","б","в","г"], "correct_index": 0, "level": "A1"}]}`},
		{"three options", `{"questions": [{"prompt": "q", "options": ["а","б","в"], "correct_index": 0, "level": "A1"}]}`},
		{"index out of range", `{"questions": [{"prompt": "q", "options": ["а","б","в","г"], "correct_index": 4, "level": "A1"}]}`},
		{"unknown level", `{"questions": [{"prompt": "q", "options": ["а","б","в","г"], "correct_index": 0, "level": "Z9"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.body)
			assert.Error(t, err)
		})
	}
}

func TestParseResponse_OneBadQuestionRejectsAll(t *testing.T) {
	body := `{
		"questions": [
			{"prompt": "ok", "options": ["а","б","в","г"], "correct_index": 0, "level": "A1"},
			{"prompt": "bad", "options": ["а","б"], "correct_index": 0, "level": "A1"}
		]
	}`
	_, err := ParseResponse(body)
	assert.Error(t, err)
}

func TestFallbackQuestions(t *testing.T) {
	questions := fallbackQuestions(3)
	require.Len(t, questions, 3)

	// Requests beyond the built-in set are capped, not padded.
	all := fallbackQuestions(100)
	assert.Len(t, all, len(fallbackSet))

	for _, q := range all {
		assert.NotEmpty(t, q.Prompt)
		assert.Len(t, q.Options, 4)
		assert.True(t, q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options))
	}
}
