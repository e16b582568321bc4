package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username, firstName string) (bool, error)
}

type LearningService interface {
	DailyWords(ctx context.Context, userID int64, count int) (*service.DailyWordsResult, error)
	ProgressSummary(ctx context.Context, userID int64) (*service.ProgressSummary, error)
	LevelState(ctx context.Context, userID int64) (*entities.UserLevelState, error)
}

type ExerciseService interface {
	Start(ctx context.Context, userID int64) (*entities.ExerciseFlow, error)
	Resume(ctx context.Context, userID int64) (*entities.ExerciseFlow, error)
	Answer(ctx context.Context, userID int64, questionIndex, selectedIndex int) (*service.ExerciseAnswerResult, error)
}

type AssessmentService interface {
	Start(ctx context.Context, userID int64) (*entities.AssessmentFlow, error)
	Answer(ctx context.Context, userID int64, questionIndex, selectedIndex int) (*service.AssessmentAnswerResult, error)
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error)
	UpdateWordsPerDay(ctx context.Context, userID int64, wordsPerDay int) error
	UpdateReminderHour(ctx context.Context, userID int64, hour int) error
	ToggleReminder(ctx context.Context, userID int64) (bool, error)
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) error
}

type Handler struct {
	bot               *tgbotapi.BotAPI
	logger            *zap.Logger
	userService       UserService
	learningService   LearningService
	exerciseService   ExerciseService
	assessmentService AssessmentService
	settingsService   SettingsService
	resetService      ResetService
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	userService UserService,
	learningService LearningService,
	exerciseService ExerciseService,
	assessmentService AssessmentService,
	settingsService SettingsService,
	resetService ResetService,
) *Handler {
	return &Handler{
		bot:               bot,
		logger:            logger,
		userService:       userService,
		learningService:   learningService,
		exerciseService:   exerciseService,
		assessmentService: assessmentService,
		settingsService:   settingsService,
		resetService:      resetService,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	created, err := h.userService.EnsureUser(ctx, from.ID, chatID, from.UserName, from.FirstName)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}
	if created {
		h.logger.Info("new user registered", zap.Int64("user_id", from.ID))
	}

	if !update.Message.IsCommand() {
		h.sendError(chatID, msgUnknownCommand)
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling("start", h.startHandler(from.ID))(ctx, chatID)

	case "words":
		_ = h.withErrorHandling("words", h.wordsHandler(from.ID))(ctx, chatID)

	case "exercise":
		_ = h.withErrorHandling("exercise", h.exerciseHandler(from.ID))(ctx, chatID)

	case "progress":
		_ = h.withErrorHandling("progress", h.progressHandler(from.ID))(ctx, chatID)

	case "level":
		_ = h.withErrorHandling("level", h.levelHandler(from.ID))(ctx, chatID)

	case "settings":
		_ = h.withErrorHandling("settings", h.settingsHandler(from.ID))(ctx, chatID)

	case "reset":
		h.handleResetCommand(chatID)

	case "help":
		msg := newHTMLMessage(chatID, msgHelp)
		h.send(msg)

	default:
		h.sendError(chatID, msgUnknownCommand)
	}
}

// SendDailyWords delivers a scheduled daily batch. It implements the
// scheduler's Notifier interface.
func (h *Handler) SendDailyWords(chatID int64, result *service.DailyWordsResult) error {
	msg := newHTMLMessage(chatID, formatDailyWords(result))
	msg.ReplyMarkup = buildAfterWordsKeyboard()

	if _, err := h.bot.Send(msg); err != nil {
		return err
	}
	return nil
}

func (h *Handler) sendError(chatID int64, text string) {
	msg := newHTMLMessage(chatID, text)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}
