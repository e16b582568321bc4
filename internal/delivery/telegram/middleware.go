package telegram

import (
	"context"

	"go.uber.org/zap"
)

// HandlerFunc is a chat-scoped command or callback handler.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler under its name and replies with a
// generic error message, so one broken command never kills the update loop.
func (h *Handler) withErrorHandling(name string, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handler failed",
				zap.String("handler", name),
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}
