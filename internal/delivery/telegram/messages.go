package telegram

import (
	"fmt"
	"strings"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/service"
)

const lrm = "‎"

const msgWelcome = `<b>שלום! Добро пожаловать! 👋</b>

Я помогу вам учить иврит: каждый день — новые слова, упражнения и отслеживание прогресса.

Сначала пройдите короткий тест, чтобы определить ваш уровень.`

const msgWelcomeBack = `<b>С возвращением! 👋</b>

/words — слова на сегодня
/exercise — упражнение
/progress — ваш прогресс

Полный список команд: /help`

const msgHelp = `<b>Команды</b>

/words — получить слова на сегодня
/exercise — начать упражнение
/progress — прогресс по текущему уровню
/level — текущий уровень
/settings — настройки
/reset — сбросить прогресс
/help — эта справка`

const (
	msgUnknownCommand  = "Я понимаю только команды. Список команд: /help"
	msgInternalError   = "Что-то пошло не так. Попробуйте ещё раз позже."
	msgNoLevel         = "Сначала нужно определить ваш уровень. Пройдите короткий тест 👇"
	msgNoWordsLearned  = "Вы ещё не получали слов. Начните с команды /words — упражнения станут доступны после первой порции."
	msgAssessmentIntro = "Тест из пяти вопросов: выберите перевод ивритского слова. Отвечайте, как знаете — это определит ваш стартовый уровень."
	msgResetConfirm    = "Вы уверены? Весь прогресс — слова, уровень, история упражнений — будет удалён. Это действие нельзя отменить."
	msgResetDone       = "Прогресс сброшен. Начните заново с команды /start"
	msgResetCancelled  = "Сброс отменён. Ваш прогресс на месте 👍"
	msgExerciseExpired = "Это упражнение уже завершено. Начните новое: /exercise"
)

// formatWordCard renders a single vocabulary word.
func formatWordCard(w *entities.Word) string {
	return fmt.Sprintf(
		"%s<b>%s</b> — %s\n<i>%s</i>",
		lrm,
		w.Hebrew,
		w.Russian,
		w.Transliteration,
	)
}

// formatDailyWords renders the daily batch message.
func formatDailyWords(result *service.DailyWordsResult) string {
	var b strings.Builder

	if result.Advanced {
		fmt.Fprintf(&b,
			"🎉 <b>Поздравляем! Вы перешли с уровня %s на %s!</b>\n\n",
			result.PreviousLevel, result.Level,
		)
	}

	if len(result.Words) == 0 {
		fmt.Fprintf(&b,
			"На уровне %s не осталось новых слов. Закрепляйте пройденное: /exercise",
			result.Level,
		)
		return b.String()
	}

	fmt.Fprintf(&b,
		"<b>📖 Слова на сегодня</b> (уровень %s, освоено %d%%)\n\n",
		result.Level, result.Mastery,
	)

	for _, w := range result.Words {
		b.WriteString(formatWordCard(w))
		b.WriteString("\n\n")
	}

	b.WriteString("Закрепите новые слова упражнением 👇")
	return b.String()
}

// formatExerciseQuestion renders one exercise question header plus prompt.
func formatExerciseQuestion(q *entities.Question, index, total int) string {
	header := fmt.Sprintf("<b>Вопрос %d из %d</b>\n\n", index+1, total)

	switch q.Kind {
	case entities.KindFlashcard:
		return header + fmt.Sprintf(
			"Вспомните перевод:\n\n%s<b>%s</b>\n\nНажмите, чтобы проверить себя.",
			lrm, q.Prompt,
		)
	case entities.KindRussianToHebrew:
		return header + fmt.Sprintf("Как на иврите <b>«%s»</b>?", q.Prompt)
	default:
		return header + fmt.Sprintf("Что значит %s<b>%s</b>?", lrm, q.Prompt)
	}
}

// formatAnswerFeedback renders the correctness line shown after an answer.
// Flashcards always reveal the translation since the user graded themselves.
func formatAnswerFeedback(kind entities.ExerciseKind, result *service.ExerciseAnswerResult) string {
	var b strings.Builder

	switch {
	case kind == entities.KindFlashcard:
		if result.Correct {
			b.WriteString("✅ Отлично!")
		} else {
			b.WriteString("Запомните:")
		}
		if result.Word != nil {
			b.WriteString("\n")
			b.WriteString(formatWordCard(result.Word))
		}
	case result.Correct:
		b.WriteString("✅ Верно!")
	default:
		fmt.Fprintf(&b, "❌ Неверно. Правильный ответ: %s<b>%s</b>", lrm, result.CorrectAnswer)
	}

	if result.WordResult != nil && result.WordResult.Mastered {
		b.WriteString("\n⭐ Слово освоено!")
	}

	return b.String()
}

// formatExerciseSummary renders the end-of-exercise message.
func formatExerciseSummary(correct, total int) string {
	var verdict string
	switch {
	case correct == total:
		verdict = "Идеально! 🏆"
	case correct*2 >= total:
		verdict = "Хороший результат 💪"
	default:
		verdict = "Повторите слова и попробуйте ещё раз 📖"
	}

	return fmt.Sprintf(
		"<b>Упражнение завершено</b>\n\nПравильных ответов: %d из %d\n%s",
		correct, total, verdict,
	)
}

// formatAssessmentQuestion renders one placement test question.
func formatAssessmentQuestion(q *entities.AssessmentQuestion, index, total int) string {
	return fmt.Sprintf(
		"<b>Тест: вопрос %d из %d</b>\n\n%s",
		index+1, total, q.Prompt,
	)
}

// formatAssessmentResult renders the placement verdict.
func formatAssessmentResult(result *service.AssessmentAnswerResult) string {
	return fmt.Sprintf(
		"<b>Тест пройден!</b>\n\nПравильных ответов: %d из %d\nВаш уровень: <b>%s</b>\n\nПолучите первые слова: /words",
		result.CorrectCount, result.Total, result.Level,
	)
}

// formatProgress renders the /progress view.
func formatProgress(s *service.ProgressSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>📊 Прогресс — уровень %s</b>\n\n", s.Level)
	fmt.Fprintf(&b, "%s %d%%\n\n", progressBar(s.Mastery), s.Mastery)
	fmt.Fprintf(&b, "Всего слов на уровне: %d\n", s.TotalWords)
	fmt.Fprintf(&b, "🟡 Изучаются: %d\n", s.Learning)
	fmt.Fprintf(&b, "🔵 Повторяются: %d\n", s.Reviewing)
	fmt.Fprintf(&b, "⭐ Освоены: %d\n", s.Mastered)

	if s.NextShare > 0 {
		fmt.Fprintf(&b, "\nВ ежедневной порции %d%% слов — со следующего уровня.", s.NextShare)
	}
	if s.Mastery >= 95 {
		b.WriteString("\nСледующая порция слов переведёт вас на новый уровень! 🚀")
	}

	return b.String()
}

// progressBar renders a ten-segment bar for a 0-100 percentage.
func progressBar(percent int) string {
	filled := percent / 10
	return strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled)
}

// formatSettings renders the settings menu text.
func formatSettings(s *entities.UserSettings) string {
	return fmt.Sprintf(
		"<b>⚙️ Настройки</b>\n\n"+
			"📚 <b>Слов в день:</b> %d\n"+
			"⏰ <b>Час напоминания (UTC):</b> %02d:00\n"+
			"🔔 <b>Напоминания:</b> %s",
		s.WordsPerDay,
		s.ReminderHourUTC,
		formatBool(s.ReminderEnabled),
	)
}

func formatBool(b bool) string {
	if b {
		return "Включены ✅"
	}
	return "Выключены ❌"
}
