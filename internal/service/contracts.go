package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres/repository"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
}

type WordRepository interface {
	GetByID(ctx context.Context, wordID int64) (*entities.Word, error)
	GetByIDs(ctx context.Context, wordIDs []int64) (map[int64]*entities.Word, error)
	CountAtLevel(ctx context.Context, level entities.Level) (int, error)
	FindUnseen(ctx context.Context, userID int64, level entities.Level, limit int) ([]*entities.Word, error)
	GetRandomAtLevel(ctx context.Context, level entities.Level, exceptID int64, limit int) ([]*entities.Word, error)
}

type WordStateRepository interface {
	UpsertLearning(ctx context.Context, userID, wordID int64) error
	Get(ctx context.Context, userID, wordID int64) (*entities.UserWordState, error)
	IncrementReviewCount(ctx context.Context, userID, wordID int64) (entities.WordStatus, int, error)
	SetStatus(ctx context.Context, userID, wordID int64, from, to entities.WordStatus, masteredAt *time.Time) (bool, error)
	CountMastered(ctx context.Context, userID int64, level entities.Level) (int, error)
	CountByStatus(ctx context.Context, userID int64, level entities.Level) (*repository.StatusCounts, error)
	RecentWordIDs(ctx context.Context, userID int64, limit int) ([]int64, error)
}

type AttemptRepository interface {
	Append(ctx context.Context, a *entities.ExerciseAttempt) error
}

type LevelStateRepository interface {
	Get(ctx context.Context, userID int64) (*entities.UserLevelState, error)
	Set(ctx context.Context, userID int64, level entities.Level, masteryPercent int) error
	UpdateMastery(ctx context.Context, userID int64, masteryPercent int) error
}

type SettingsRepository interface {
	Create(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*entities.UserSettings, error)
	UpdateWordsPerDay(ctx context.Context, userID int64, wordsPerDay int) error
	UpdateReminderHour(ctx context.Context, userID int64, hour int) error
	ToggleReminder(ctx context.Context, userID int64) (bool, error)
	MarkDelivered(ctx context.Context, userID int64) error
	GetDueReminders(ctx context.Context, hourUTC int) ([]*repository.DueReminder, error)
}

type FlowRepository interface {
	SaveExercise(ctx context.Context, userID int64, flow *entities.ExerciseFlow) error
	SaveAssessment(ctx context.Context, userID int64, flow *entities.AssessmentFlow) error
	GetExercise(ctx context.Context, userID int64) (*entities.ExerciseFlow, error)
	GetAssessment(ctx context.Context, userID int64) (*entities.AssessmentFlow, error)
	Delete(ctx context.Context, userID int64, kind entities.FlowKind) error
}

// Transactor runs a function inside a database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// AssessmentGenerator produces placement-test questions.
type AssessmentGenerator interface {
	Generate(ctx context.Context, count int) ([]entities.AssessmentQuestion, error)
}
