package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/levkar/milim-bot/internal/service"
)

func (h *Handler) startHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		_, err := h.learningService.LevelState(ctx, userID)
		if errors.Is(err, service.ErrNoLevelAssigned) {
			msg := newHTMLMessage(chatID, msgWelcome)
			msg.ReplyMarkup = buildAssessmentStartKeyboard()
			h.send(msg)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get level state: %w", err)
		}

		msg := newHTMLMessage(chatID, msgWelcomeBack)
		h.send(msg)
		return nil
	}
}

func (h *Handler) wordsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.settingsService.GetOrCreate(ctx, userID)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}

		result, err := h.learningService.DailyWords(ctx, userID, settings.WordsPerDay)
		if errors.Is(err, service.ErrNoLevelAssigned) {
			msg := newHTMLMessage(chatID, msgNoLevel)
			msg.ReplyMarkup = buildAssessmentStartKeyboard()
			h.send(msg)
			return nil
		}
		if err != nil {
			return fmt.Errorf("daily words: %w", err)
		}

		msg := newHTMLMessage(chatID, formatDailyWords(result))
		if len(result.Words) > 0 {
			msg.ReplyMarkup = buildAfterWordsKeyboard()
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) exerciseHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		flow, err := h.exerciseService.Resume(ctx, userID)
		if errors.Is(err, service.ErrNoActiveExercise) {
			flow, err = h.exerciseService.Start(ctx, userID)
		}
		if errors.Is(err, service.ErrNoWordsToExercise) {
			h.sendError(chatID, msgNoWordsLearned)
			return nil
		}
		if err != nil {
			return fmt.Errorf("start exercise: %w", err)
		}

		q := flow.CurrentQuestion()
		msg := newHTMLMessage(chatID, formatExerciseQuestion(q, flow.Current, len(flow.Questions)))
		msg.ReplyMarkup = buildQuestionKeyboard(q, flow.Current)
		h.send(msg)
		return nil
	}
}

func (h *Handler) progressHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		summary, err := h.learningService.ProgressSummary(ctx, userID)
		if errors.Is(err, service.ErrNoLevelAssigned) {
			msg := newHTMLMessage(chatID, msgNoLevel)
			msg.ReplyMarkup = buildAssessmentStartKeyboard()
			h.send(msg)
			return nil
		}
		if err != nil {
			return fmt.Errorf("progress summary: %w", err)
		}

		msg := newHTMLMessage(chatID, formatProgress(summary))
		h.send(msg)
		return nil
	}
}

func (h *Handler) levelHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		summary, err := h.learningService.ProgressSummary(ctx, userID)
		if errors.Is(err, service.ErrNoLevelAssigned) {
			msg := newHTMLMessage(chatID, msgNoLevel)
			msg.ReplyMarkup = buildAssessmentStartKeyboard()
			h.send(msg)
			return nil
		}
		if err != nil {
			return fmt.Errorf("progress summary: %w", err)
		}

		text := fmt.Sprintf(
			"Ваш уровень: <b>%s</b>\nОсвоено: <b>%d%%</b>",
			summary.Level, summary.Mastery,
		)
		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}

func (h *Handler) settingsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.settingsService.GetOrCreate(ctx, userID)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}

		msg := newHTMLMessage(chatID, formatSettings(settings))
		msg.ReplyMarkup = buildSettingsKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleResetCommand(chatID int64) {
	msg := newHTMLMessage(chatID, msgResetConfirm)
	msg.ReplyMarkup = buildResetKeyboard()
	h.send(msg)
}
