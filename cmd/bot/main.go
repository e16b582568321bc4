package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/levkar/milim-bot/internal/assessment"
	"github.com/levkar/milim-bot/internal/config"
	"github.com/levkar/milim-bot/internal/delivery/telegram"
	"github.com/levkar/milim-bot/internal/infra/postgres"
	"github.com/levkar/milim-bot/internal/infra/postgres/repository"
	"github.com/levkar/milim-bot/internal/logger"
	"github.com/levkar/milim-bot/internal/scheduler"
	"github.com/levkar/milim-bot/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.Migrate(cfg.DB.URL); err != nil {
		zl.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	wordRepo := repository.NewWordRepository(pool)
	wordStateRepo := repository.NewWordStateRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	levelStateRepo := repository.NewLevelStateRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	flowRepo := repository.NewFlowRepository(pool)
	transactor := postgres.NewTransactor(pool)

	learningService := service.NewLearningService(wordRepo, wordStateRepo, attemptRepo, levelStateRepo, cfg.Learning)
	exerciseService := service.NewExerciseService(wordRepo, wordStateRepo, flowRepo, learningService)
	generator := assessment.New(cfg.AnthropicAPIKey, zl)
	assessmentService := service.NewAssessmentService(generator, flowRepo, learningService)
	userService := service.NewUserService(userRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	resetService := service.NewResetService(transactor)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to create telegram bot", zap.Error(err))
	}
	zl.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Запустить бота"},
		{Command: "words", Description: "Слова на сегодня"},
		{Command: "exercise", Description: "Начать упражнение"},
		{Command: "progress", Description: "Показать прогресс"},
		{Command: "level", Description: "Текущий уровень"},
		{Command: "settings", Description: "Настройки"},
		{Command: "reset", Description: "Сбросить прогресс"},
		{Command: "help", Description: "Помощь"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		zl,
		userService,
		learningService,
		exerciseService,
		assessmentService,
		settingsService,
		resetService,
	)

	sched := scheduler.New(settingsRepo, learningService, zl)
	sched.SetNotifier(handler)
	if err := sched.Start(ctx); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zl.Error("handler stopped", zap.Error(err))
	}

	zl.Info("shutdown complete")
}
