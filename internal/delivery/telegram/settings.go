package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/levkar/milim-bot/internal/service"
)

func (h *Handler) handleSettingsCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData, userID, chatID int64) {
	if len(data.Params) == 0 {
		return
	}

	switch data.Params[0] {
	case settingsMenu:
		h.editSettingsMenu(ctx, cb, userID, chatID)

	case settingsWordsPerDay:
		if len(data.Params) == 1 {
			h.editTo(cb, chatID, "Сколько слов присылать каждый день?", buildWordsPerDayKeyboard())
			return
		}
		h.applyWordsPerDay(ctx, cb, data.Params[1], userID, chatID)

	case settingsHour:
		if len(data.Params) == 1 {
			h.editTo(cb, chatID, "В котором часу (UTC) присылать слова?", buildHourKeyboard())
			return
		}
		h.applyReminderHour(ctx, cb, data.Params[1], userID, chatID)

	case settingsReminders:
		if len(data.Params) == 2 && data.Params[1] == reminderToggle {
			h.applyReminderToggle(ctx, cb, userID, chatID)
		}

	default:
		h.logger.Debug("unknown settings callback", zap.String("data", data.Raw))
	}
}

func (h *Handler) applyWordsPerDay(ctx context.Context, cb *tgbotapi.CallbackQuery, raw string, userID, chatID int64) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.Debug("invalid words per day callback", zap.String("value", raw))
		return
	}

	if err := h.settingsService.UpdateWordsPerDay(ctx, userID, n); err != nil {
		if errors.Is(err, service.ErrInvalidWordsPerDay) {
			h.logger.Debug("rejected words per day value", zap.Int("value", n))
			return
		}
		h.logger.Error("failed to update words per day",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	h.editSettingsMenu(ctx, cb, userID, chatID)
}

func (h *Handler) applyReminderHour(ctx context.Context, cb *tgbotapi.CallbackQuery, raw string, userID, chatID int64) {
	hour, err := strconv.Atoi(raw)
	if err != nil {
		h.logger.Debug("invalid reminder hour callback", zap.String("value", raw))
		return
	}

	if err := h.settingsService.UpdateReminderHour(ctx, userID, hour); err != nil {
		h.logger.Error("failed to update reminder hour",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	h.editSettingsMenu(ctx, cb, userID, chatID)
}

func (h *Handler) applyReminderToggle(ctx context.Context, cb *tgbotapi.CallbackQuery, userID, chatID int64) {
	if _, err := h.settingsService.ToggleReminder(ctx, userID); err != nil {
		h.logger.Error("failed to toggle reminders",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	h.editSettingsMenu(ctx, cb, userID, chatID)
}

// editSettingsMenu re-renders the settings menu in place.
func (h *Handler) editSettingsMenu(ctx context.Context, cb *tgbotapi.CallbackQuery, userID, chatID int64) {
	settings, err := h.settingsService.GetOrCreate(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load settings",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	h.editTo(cb, chatID, formatSettings(settings), buildSettingsKeyboard())
}

func (h *Handler) editTo(cb *tgbotapi.CallbackQuery, chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = &kb
	h.send(edit)
}
