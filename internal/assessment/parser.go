package assessment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

type generatedSet struct {
	Questions []generatedQuestion `json:"questions"`
}

type generatedQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Level        string   `json:"level"`
}

// ParseResponse decodes and validates the model's JSON into assessment
// questions. Questions that fail validation are rejected as a whole: a
// partially valid assessment would skew the placement.
func ParseResponse(responseBody string) ([]entities.AssessmentQuestion, error) {
	cleaned := stripCodeFences(responseBody)

	var set generatedSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return nil, fmt.Errorf("parse assessment JSON: %w", err)
	}
	if len(set.Questions) == 0 {
		return nil, fmt.Errorf("assessment response contains no questions")
	}

	questions := make([]entities.AssessmentQuestion, 0, len(set.Questions))
	for i, q := range set.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, fmt.Errorf("question %d: empty prompt", i)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d: expected 4 options, got %d", i, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("question %d: correct index %d out of range", i, q.CorrectIndex)
		}
		level, err := entities.ParseLevel(q.Level)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}

		questions = append(questions, entities.AssessmentQuestion{
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Level:        level,
		})
	}

	return questions, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
