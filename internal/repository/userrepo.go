// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/m-ovsyannikov/promisetrack/internal/model"
)

// UserRepository persists Telegram identities.
type UserRepository interface {
	// Upsert inserts the user or refreshes display fields keyed by telegram_id.
	Upsert(ctx context.Context, tu *model.TelegramUser) (*model.User, error)
	// GetByTelegramID loads a user by the external Telegram identity.
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}
