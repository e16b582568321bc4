package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/levkar/milim-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}

	data := decodeCallback(cb.Data)
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	switch data.Action {
	case actionExercise:
		h.handleExerciseCallback(ctx, cb, data, userID, chatID)

	case actionAssessment:
		h.handleAssessmentCallback(ctx, cb, data, userID, chatID)

	case actionSettings:
		h.handleSettingsCallback(ctx, cb, data, userID, chatID)

	case actionWords:
		_ = h.withErrorHandling("words", h.wordsHandler(userID))(ctx, chatID)

	case actionReset:
		h.handleResetCallback(ctx, cb, data, userID, chatID)

	default:
		h.logger.Debug("unknown callback action", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Error("callback answer error", zap.Error(err))
	}
}

func (h *Handler) handleExerciseCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData, userID, chatID int64) {
	if len(data.Params) == 1 && data.Params[0] == exerciseStart {
		_ = h.withErrorHandling("exercise", h.exerciseHandler(userID))(ctx, chatID)
		return
	}

	questionIndex, answerIndex, ok := parseAnswerParams(data.Params)
	if !ok {
		h.logger.Debug("invalid exercise callback", zap.String("data", data.Raw))
		return
	}

	result, err := h.exerciseService.Answer(ctx, userID, questionIndex, answerIndex)
	if errors.Is(err, service.ErrStaleAnswer) {
		// Old button from an already-answered question; ignore quietly.
		return
	}
	if errors.Is(err, service.ErrNoActiveExercise) {
		h.sendError(chatID, msgExerciseExpired)
		return
	}
	if err != nil {
		h.logger.Error("exercise answer failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	feedback := formatAnswerFeedback(result.Kind, result)
	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, feedback)
	edit.ParseMode = tgbotapi.ModeHTML
	h.send(edit)

	if result.Done {
		msg := newHTMLMessage(chatID, formatExerciseSummary(result.CorrectCount, result.Total))
		msg.ReplyMarkup = buildAfterExerciseKeyboard()
		h.send(msg)
		return
	}

	nextIndex := questionIndex + 1
	msg := newHTMLMessage(chatID, formatExerciseQuestion(result.Next, nextIndex, result.Total))
	msg.ReplyMarkup = buildQuestionKeyboard(result.Next, nextIndex)
	h.send(msg)
}

func (h *Handler) handleAssessmentCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData, userID, chatID int64) {
	if len(data.Params) == 1 && data.Params[0] == assessmentStart {
		h.handleAssessmentStart(ctx, userID, chatID)
		return
	}

	questionIndex, answerIndex, ok := parseAnswerParams(data.Params)
	if !ok {
		h.logger.Debug("invalid assessment callback", zap.String("data", data.Raw))
		return
	}

	result, err := h.assessmentService.Answer(ctx, userID, questionIndex, answerIndex)
	if errors.Is(err, service.ErrStaleAnswer) {
		return
	}
	if errors.Is(err, service.ErrNoActiveAssessment) {
		msg := newHTMLMessage(chatID, msgNoLevel)
		msg.ReplyMarkup = buildAssessmentStartKeyboard()
		h.send(msg)
		return
	}
	if err != nil {
		h.logger.Error("assessment answer failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	if result.Done {
		edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, formatAssessmentResult(result))
		edit.ParseMode = tgbotapi.ModeHTML
		h.send(edit)
		return
	}

	nextIndex := questionIndex + 1
	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID,
		formatAssessmentQuestion(result.Next, nextIndex, result.Total))
	edit.ParseMode = tgbotapi.ModeHTML
	kb := buildAssessmentQuestionKeyboard(result.Next, nextIndex)
	edit.ReplyMarkup = &kb
	h.send(edit)
}

func (h *Handler) handleAssessmentStart(ctx context.Context, userID, chatID int64) {
	flow, err := h.assessmentService.Start(ctx, userID)
	if err != nil {
		h.logger.Error("assessment start failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	intro := newHTMLMessage(chatID, msgAssessmentIntro)
	h.send(intro)

	q := flow.CurrentQuestion()
	msg := newHTMLMessage(chatID, formatAssessmentQuestion(q, flow.Current, len(flow.Questions)))
	msg.ReplyMarkup = buildAssessmentQuestionKeyboard(q, flow.Current)
	h.send(msg)
}

func (h *Handler) handleResetCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData, userID, chatID int64) {
	if len(data.Params) != 1 {
		return
	}

	var text string
	switch data.Params[0] {
	case resetConfirm:
		if err := h.resetService.ResetUser(ctx, userID); err != nil {
			h.logger.Error("reset failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			text = msgInternalError
		} else {
			text = msgResetDone
		}
	case resetCancel:
		text = msgResetCancelled
	default:
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	h.send(edit)
}

// parseAnswerParams extracts (questionIndex, answerIndex) from callback
// params.
func parseAnswerParams(params []string) (int, int, bool) {
	if len(params) != 2 {
		return 0, 0, false
	}
	questionIndex, err1 := strconv.Atoi(params[0])
	answerIndex, err2 := strconv.Atoi(params[1])
	if err1 != nil || err2 != nil || questionIndex < 0 || answerIndex < 0 {
		return 0, 0, false
	}
	return questionIndex, answerIndex, true
}
