package repository

import (
	"context"

	"github.com/m-ovsyannikov/promisetrack/internal/model"
)

// FeedRepository reads the public activity feed.
type FeedRepository interface {
	// List returns feed entries newest first, excluding activity that
	// references a private promise.
	List(ctx context.Context, limit, offset int) ([]model.FeedEntry, error)
}
