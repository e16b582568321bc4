package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

// buildQuestionKeyboard builds the answer keyboard for an exercise
// question. Flashcards get the self-assessment pair instead of options.
func buildQuestionKeyboard(q *entities.Question, questionIndex int) tgbotapi.InlineKeyboardMarkup {
	if q.Kind == entities.KindFlashcard {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Помню", buildExerciseAnswerCallback(questionIndex, 1)),
				tgbotapi.NewInlineKeyboardButtonData("❌ Не помню", buildExerciseAnswerCallback(questionIndex, 0)),
			),
		)
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for i, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, buildExerciseAnswerCallback(questionIndex, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAssessmentQuestionKeyboard builds the answer keyboard for a
// placement test question.
func buildAssessmentQuestionKeyboard(q *entities.AssessmentQuestion, questionIndex int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for i, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, buildAssessmentAnswerCallback(questionIndex, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildAssessmentStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Пройти тест", buildAssessmentStartCallback()),
		),
	)
}

func buildAfterWordsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💪 Начать упражнение", buildExerciseStartCallback()),
		),
	)
}

func buildAfterExerciseKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Ещё раз", buildExerciseStartCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📖 Слова", buildWordsCallback()),
		),
	)
}

func buildSettingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Слов в день", buildSettingsCallback(settingsWordsPerDay)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Час напоминания", buildSettingsCallback(settingsHour)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔔 Вкл/выкл напоминания", buildSettingsCallback(settingsReminders, reminderToggle)),
		),
	)
}

func buildWordsPerDayKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.WordsPerDayOptions))
	for _, n := range entities.WordsPerDayOptions {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(n),
			buildSettingsCallback(settingsWordsPerDay, strconv.Itoa(n)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(row...),
		settingsBackRow(),
	)
}

func buildHourKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for hour := 6; hour <= 21; hour++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%02d:00", hour),
			buildSettingsCallback(settingsHour, strconv.Itoa(hour)),
		))
		if len(row) == 4 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = nil
		}
	}

	rows = append(rows, settingsBackRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func settingsBackRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", buildSettingsCallback(settingsMenu)),
	)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Да, сбросить", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Отмена", buildResetCancelCallback()),
		),
	)
}
