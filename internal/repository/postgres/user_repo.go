package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/m-ovsyannikov/promisetrack/internal/errs"
	"github.com/m-ovsyannikov/promisetrack/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// nullable maps an empty profile field to NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Upsert inserts or refreshes a user keyed by telegram_id.
func (r *UserRepo) Upsert(ctx context.Context, tu *model.TelegramUser) (*model.User, error) {
	const q = `
INSERT INTO users (telegram_id, username, first_name, last_name, photo_url, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (telegram_id) DO UPDATE SET
    username = EXCLUDED.username,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    photo_url = EXCLUDED.photo_url,
    updated_at = now()
RETURNING id, telegram_id, username, first_name, last_name, photo_url, created_at, updated_at`
	row := r.db.Pool.QueryRow(ctx, q,
		tu.ID, nullable(tu.Username), nullable(tu.FirstName), nullable(tu.LastName), nullable(tu.PhotoURL))

	var u model.User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.PhotoURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByTelegramID selects a user by the external Telegram identity.
func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	const q = `
SELECT id, telegram_id, username, first_name, last_name, photo_url, created_at, updated_at
FROM users WHERE telegram_id=$1`
	row := r.db.Pool.QueryRow(ctx, q, telegramID)

	var u model.User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.PhotoURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
