package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/levkar/milim-bot/internal/infra/postgres/repository"
)

// ResetService wipes a user's learning state so they can restart from the
// placement assessment. Everything is deleted in one transaction.
type ResetService struct {
	tr Transactor
}

func NewResetService(tr Transactor) *ResetService {
	return &ResetService{tr: tr}
}

func (s *ResetService) ResetUser(ctx context.Context, userID int64) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		resetRepo := repository.NewResetRepository(tx)
		settingsRepo := repository.NewSettingsRepository(tx)

		if err := resetRepo.ResetUser(ctx, userID); err != nil {
			return err
		}

		// Recreate default settings if they were never created.
		return settingsRepo.Create(ctx, userID)
	})
}
