package repository

import (
	"context"

	"github.com/m-ovsyannikov/promisetrack/internal/model"
)

// PromiseRepository provides owner-scoped access to promises. Mutations carry
// their feed and achievement side effects in the same transaction.
type PromiseRepository interface {
	// Create inserts a promise, appends a "created" feed entry, and unlocks
	// the first_promise achievement, atomically.
	Create(ctx context.Context, userID int64, np *model.NewPromise) (*model.Promise, error)

	// Update applies the patch to a promise owned by userID. Completion forces
	// progress to 100, stamps completed_at, appends a "completed" feed entry,
	// and unlocks first_complete, atomically. Unknown or foreign ids roll back
	// and return errs.ErrNotFound.
	Update(ctx context.Context, userID, promiseID int64, patch model.PromisePatch) (*model.Promise, error)

	// ListByUser returns all promises owned by userID, newest created first.
	ListByUser(ctx context.Context, userID int64) ([]model.Promise, error)
}
