package service

import (
	"context"

	"github.com/levkar/milim-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser registers the user on first contact and keeps the chat
// binding current afterwards. It reports whether the user is new.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, username, firstName string) (bool, error) {
	user := entities.NewUser(userID, chatID, username, firstName)
	return s.repository.Save(ctx, user)
}
