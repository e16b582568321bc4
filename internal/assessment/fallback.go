package assessment

import "github.com/levkar/milim-bot/internal/domain/entities"

// fallbackSet is a fixed placement test used when the LLM is unavailable.
// Ordered from easiest to hardest.
var fallbackSet = []entities.AssessmentQuestion{
	{
		Prompt:       "שלום",
		Options:      []string{"привет", "спасибо", "хлеб", "дом"},
		CorrectIndex: 0,
		Level:        entities.LevelA1,
	},
	{
		Prompt:       "משפחה",
		Options:      []string{"работа", "семья", "город", "книга"},
		CorrectIndex: 1,
		Level:        entities.LevelA2,
	},
	{
		Prompt:       "להתרגל",
		Options:      []string{"отказываться", "переезжать", "привыкать", "обещать"},
		CorrectIndex: 2,
		Level:        entities.LevelB1,
	},
	{
		Prompt:       "הישג",
		Options:      []string{"упущение", "достижение", "переговоры", "убеждение"},
		CorrectIndex: 1,
		Level:        entities.LevelB2,
	},
	{
		Prompt:       "קנאה",
		Options:      []string{"снисхождение", "упрямство", "равнодушие", "зависть"},
		CorrectIndex: 3,
		Level:        entities.LevelC1,
	},
}

func fallbackQuestions(count int) []entities.AssessmentQuestion {
	if count >= len(fallbackSet) {
		count = len(fallbackSet)
	}
	out := make([]entities.AssessmentQuestion, count)
	copy(out, fallbackSet[:count])
	return out
}
