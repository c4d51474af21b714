package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/m-ovsyannikov/promisetrack/internal/errs"
	"github.com/m-ovsyannikov/promisetrack/internal/model"
)

// PromiseRepo implements PromiseRepository using PostgreSQL.
type PromiseRepo struct{ db *DB }

// NewPromiseRepo constructs a promise repository.
func NewPromiseRepo(db *DB) *PromiseRepo { return &PromiseRepo{db: db} }

const promiseColumns = `id, user_id, title, description, deadline, category, is_public, status, progress, created_at, updated_at, completed_at`

func scanPromise(row pgx.Row) (*model.Promise, error) {
	var p model.Promise
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Deadline, &p.Category,
		&p.IsPublic, &p.Status, &p.Progress, &p.CreatedAt, &p.UpdatedAt, &p.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the promise, its "created" feed entry, and the first_promise
// unlock as one atomic unit.
func (r *PromiseRepo) Create(ctx context.Context, userID int64, np *model.NewPromise) (p *model.Promise, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const ins = `
INSERT INTO promises (user_id, title, description, deadline, category, is_public)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + promiseColumns
	p, err = scanPromise(tx.QueryRow(ctx, ins, userID, np.Title, np.Description, np.Deadline, np.Category, np.IsPublic))
	if err != nil {
		return nil, err
	}

	if err = appendActivity(ctx, tx, userID, &p.ID, model.ActivityCreated); err != nil {
		return nil, err
	}
	if err = unlockAchievement(ctx, tx, userID, model.AchievementFirstPromise); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies the patch scoped by both promise id and owner. Zero affected
// rows roll back and surface errs.ErrNotFound. A transition to "completed"
// forces progress=100, stamps completed_at, and carries the feed entry and
// first_complete unlock in the same transaction.
func (r *PromiseRepo) Update(ctx context.Context, userID, promiseID int64, patch model.PromisePatch) (p *model.Promise, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	// Fixed parameterized statement; NULL patch fields leave columns as is.
	// Completion overrides any progress supplied in the same patch.
	const upd = `
UPDATE promises SET
    status = COALESCE($3, status),
    progress = CASE WHEN $5 THEN 100 ELSE COALESCE($4, progress) END,
    completed_at = CASE WHEN $5 THEN now() ELSE completed_at END,
    updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + promiseColumns

	completed := patch.Completed()
	p, err = scanPromise(tx.QueryRow(ctx, upd, promiseID, userID, patch.Status, patch.Progress, completed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	if completed {
		if err = appendActivity(ctx, tx, userID, &promiseID, model.ActivityCompleted); err != nil {
			return nil, err
		}
		if err = unlockAchievement(ctx, tx, userID, model.AchievementFirstComplete); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ListByUser returns all promises owned by the user, newest created first.
func (r *PromiseRepo) ListByUser(ctx context.Context, userID int64) ([]model.Promise, error) {
	const q = `
SELECT ` + promiseColumns + `
FROM promises
WHERE user_id=$1
ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Promise
	for rows.Next() {
		p, err := scanPromise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// appendActivity writes one feed row within the transaction.
func appendActivity(ctx context.Context, tx pgx.Tx, userID int64, promiseID *int64, activityType string) error {
	const q = `INSERT INTO activity_feed (user_id, promise_id, activity_type) VALUES ($1, $2, $3)`
	_, err := tx.Exec(ctx, q, userID, promiseID, activityType)
	return err
}

// unlockAchievement records a one-time unlock. An unknown key is a silent
// no-op; a repeated unlock hits the (user_id, achievement_id) uniqueness
// constraint and does nothing.
func unlockAchievement(ctx context.Context, tx pgx.Tx, userID int64, key string) error {
	const sel = `SELECT id FROM achievements WHERE key=$1`
	var achievementID int64
	if err := tx.QueryRow(ctx, sel, key).Scan(&achievementID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	const ins = `
INSERT INTO user_achievements (user_id, achievement_id)
VALUES ($1, $2)
ON CONFLICT (user_id, achievement_id) DO NOTHING`
	_, err := tx.Exec(ctx, ins, userID, achievementID)
	return err
}
