package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres/repository"
)

var ErrInvalidWordsPerDay = errors.New("invalid words per day value")

type SettingsService struct {
	repository SettingsRepository
}

func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

func (s *SettingsService) GetOrCreate(ctx context.Context, userID int64) (*entities.UserSettings, error) {
	settings, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			if err := s.repository.Create(ctx, userID); err != nil {
				return nil, err
			}
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return settings, nil
}

func (s *SettingsService) UpdateWordsPerDay(ctx context.Context, userID int64, wordsPerDay int) error {
	if !entities.ValidWordsPerDay(wordsPerDay) {
		return ErrInvalidWordsPerDay
	}
	return s.repository.UpdateWordsPerDay(ctx, userID, wordsPerDay)
}

func (s *SettingsService) UpdateReminderHour(ctx context.Context, userID int64, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("invalid reminder hour: %d", hour)
	}
	return s.repository.UpdateReminderHour(ctx, userID, hour)
}

func (s *SettingsService) ToggleReminder(ctx context.Context, userID int64) (bool, error) {
	return s.repository.ToggleReminder(ctx, userID)
}
