package postgres

import (
	"context"

	"github.com/m-ovsyannikov/promisetrack/internal/model"
)

// FeedRepo implements FeedRepository using PostgreSQL.
type FeedRepo struct{ db *DB }

// NewFeedRepo constructs a feed repository.
func NewFeedRepo(db *DB) *FeedRepo { return &FeedRepo{db: db} }

// List returns public activity newest first. Activity tied to a private
// promise is suppressed; activity without a promise passes through the
// LEFT JOIN with is_public NULL.
func (r *FeedRepo) List(ctx context.Context, limit, offset int) ([]model.FeedEntry, error) {
	const q = `
SELECT
    af.id,
    af.activity_type,
    af.created_at,
    u.id,
    u.first_name,
    u.last_name,
    u.username,
    u.photo_url,
    p.id,
    p.title,
    p.category
FROM activity_feed af
JOIN users u ON af.user_id = u.id
LEFT JOIN promises p ON af.promise_id = p.id
WHERE p.is_public = true OR p.is_public IS NULL
ORDER BY af.created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.db.Pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FeedEntry
	for rows.Next() {
		var e model.FeedEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.CreatedAt,
			&e.UserID, &e.UserFirstName, &e.UserLastName, &e.UserUsername, &e.UserPhotoURL,
			&e.PromiseID, &e.PromiseTitle, &e.PromiseCategory); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
