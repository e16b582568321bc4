// Package assessment generates placement-test questions with an LLM,
// falling back to a built-in question set when no API key is configured
// or the model response cannot be used.
package assessment

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"go.uber.org/zap"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

const defaultModel = "claude-sonnet-4-20250514"

const systemPrompt = `Ты составитель теста на знание иврита для русскоязычных учеников.
Отвечай строго одним JSON-объектом без пояснений и без markdown-ограждений.`

// Generator produces placement questions via the Anthropic API.
type Generator struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

// New creates a Generator. With an empty API key every Generate call
// serves the built-in fallback set.
func New(apiKey string, logger *zap.Logger) *Generator {
	g := &Generator{model: defaultModel, logger: logger}
	if apiKey != "" {
		client := anthropic.NewClient(option.WithAPIKey(apiKey))
		g.client = &client
	}
	return g
}

// Generate returns count placement questions ordered from easiest to
// hardest. It never fails outright: on any LLM or parse error it logs the
// cause and returns the fallback set.
func (g *Generator) Generate(ctx context.Context, count int) ([]entities.AssessmentQuestion, error) {
	if g.client == nil {
		return fallbackQuestions(count), nil
	}

	questions, err := g.generateLLM(ctx, count)
	if err != nil {
		g.logger.Warn("assessment generation failed, using fallback set", zap.Error(err))
		return fallbackQuestions(count), nil
	}

	return questions, nil
}

func (g *Generator) generateLLM(ctx context.Context, count int) ([]entities.AssessmentQuestion, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   2048,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(count))),
		},
	}

	message, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	questions, err := ParseResponse(responseText)
	if err != nil {
		return nil, err
	}
	if len(questions) > count {
		questions = questions[:count]
	}

	return questions, nil
}

func buildUserPrompt(count int) string {
	return fmt.Sprintf(`Составь %d вопросов с выбором ответа для определения уровня иврита (от A1 до C1, по возрастанию сложности).
Каждый вопрос: слово или короткая фраза на иврите и четыре варианта перевода на русский, ровно один верный.

Формат ответа:
{"questions":[{"prompt":"...","options":["...","...","...","..."],"correct_index":0,"level":"A1"}]}`, count)
}
