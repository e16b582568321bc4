// Package scheduler drives the daily word delivery.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/levkar/milim-bot/internal/service"
)

// Notifier sends the daily batch to a chat.
type Notifier interface {
	SendDailyWords(chatID int64, result *service.DailyWordsResult) error
}

// Scheduler wakes up hourly and delivers the daily batch to every user
// whose reminder hour has arrived.
type Scheduler struct {
	scheduler *gocron.Scheduler
	settings  service.SettingsRepository
	learning  *service.LearningService
	notifier  Notifier
	logger    *zap.Logger
}

// New creates a scheduler. The notifier is set separately because the
// Telegram handler is constructed after the services.
func New(settings service.SettingsRepository, learning *service.LearningService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		settings:  settings,
		learning:  learning,
		logger:    logger,
	}
}

// SetNotifier sets the notifier (called after the handler is created).
func (s *Scheduler) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Start begins the hourly delivery loop in the background.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(1).Hour().StartAt(nextFullHour(time.Now().UTC())).Do(func() {
		s.deliverDue(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("daily delivery scheduler started")
	return nil
}

// Stop terminates the delivery loop.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("daily delivery scheduler stopped")
}

func (s *Scheduler) deliverDue(ctx context.Context) {
	if s.notifier == nil {
		return
	}

	hour := time.Now().UTC().Hour()

	due, err := s.settings.GetDueReminders(ctx, hour)
	if err != nil {
		s.logger.Error("failed to load due reminders", zap.Error(err))
		return
	}
	if len(due) == 0 {
		return
	}

	s.logger.Info("delivering daily batches",
		zap.Int("hour_utc", hour),
		zap.Int("users", len(due)),
	)

	for _, d := range due {
		result, err := s.learning.DailyWords(ctx, d.UserID, d.WordsPerDay)
		if err != nil {
			// Users who never finished the placement assessment have no
			// level yet; skip them without marking delivery.
			if errors.Is(err, service.ErrNoLevelAssigned) {
				continue
			}
			s.logger.Error("daily words failed",
				zap.Int64("user_id", d.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := s.notifier.SendDailyWords(d.ChatID, result); err != nil {
			s.logger.Error("failed to send daily words",
				zap.Int64("user_id", d.UserID),
				zap.Error(err),
			)
			continue
		}

		if err := s.settings.MarkDelivered(ctx, d.UserID); err != nil {
			s.logger.Error("failed to mark delivery",
				zap.Int64("user_id", d.UserID),
				zap.Error(err),
			)
		}
	}
}

// nextFullHour returns the next top of the hour, so deliveries line up
// with users' chosen hours.
func nextFullHour(now time.Time) time.Time {
	return now.Truncate(time.Hour).Add(time.Hour)
}
