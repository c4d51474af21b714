package service

import (
	"context"

	"github.com/m-ovsyannikov/promisetrack/internal/model"
	"github.com/m-ovsyannikov/promisetrack/internal/repository"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

// FeedService exposes the public activity feed.
type FeedService interface {
	// List returns public activity with pagination defaults applied.
	List(ctx context.Context, limit, offset int) ([]model.FeedEntry, int, int, error)
}

type FeedServiceImpl struct {
	repo repository.FeedRepository
}

// NewFeedService constructs FeedService.
func NewFeedService(repo repository.FeedRepository) *FeedServiceImpl {
	return &FeedServiceImpl{repo: repo}
}

// List normalizes pagination (default 50/0, limit capped at 200) and returns
// the effective values alongside the entries.
func (s *FeedServiceImpl) List(ctx context.Context, limit, offset int) ([]model.FeedEntry, int, int, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	entries, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}
	return entries, limit, offset, nil
}
