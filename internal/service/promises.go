package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-ovsyannikov/promisetrack/internal/errs"
	"github.com/m-ovsyannikov/promisetrack/internal/model"
	"github.com/m-ovsyannikov/promisetrack/internal/repository"
)

// CreatePromise is the unvalidated creation request.
type CreatePromise struct {
	Title       string
	Description string
	Deadline    time.Time
	Category    string
	IsPublic    *bool
}

// UpdatePromise is the unvalidated update request.
type UpdatePromise struct {
	ID       int64
	Status   *string
	Progress *int
}

// PromiseService defines the promise lifecycle operations.
type PromiseService interface {
	// Create validates input, applies defaults, and creates the promise with
	// its side effects.
	Create(ctx context.Context, userID int64, req CreatePromise) (*model.Promise, error)
	// Update applies a partial update to a promise owned by userID.
	Update(ctx context.Context, userID int64, req UpdatePromise) (*model.Promise, error)
	// List returns the caller's promises, newest created first.
	List(ctx context.Context, userID int64) ([]model.Promise, error)
}

type PromiseServiceImpl struct {
	repo repository.PromiseRepository
}

// NewPromiseService constructs PromiseService.
func NewPromiseService(repo repository.PromiseRepository) *PromiseServiceImpl {
	return &PromiseServiceImpl{repo: repo}
}

// Create requires a non-empty trimmed title and a deadline. Category defaults
// to "personal", visibility to public.
func (s *PromiseServiceImpl) Create(ctx context.Context, userID int64, req CreatePromise) (*model.Promise, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}
	if req.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: deadline is required", errs.ErrValidation)
	}

	np := &model.NewPromise{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Deadline:    req.Deadline,
		Category:    req.Category,
		IsPublic:    true,
	}
	if np.Category == "" {
		np.Category = "personal"
	}
	if req.IsPublic != nil {
		np.IsPublic = *req.IsPublic
	}
	return s.repo.Create(ctx, userID, np)
}

// Update validates the patch and delegates. The completion rule (progress=100,
// completed_at) is enforced by the repository inside the transaction.
func (s *PromiseServiceImpl) Update(ctx context.Context, userID int64, req UpdatePromise) (*model.Promise, error) {
	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: promise id is required", errs.ErrValidation)
	}
	if req.Status == nil && req.Progress == nil {
		return nil, fmt.Errorf("%w: nothing to update", errs.ErrValidation)
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		return nil, fmt.Errorf("%w: progress must be between 0 and 100", errs.ErrValidation)
	}
	return s.repo.Update(ctx, userID, req.ID, model.PromisePatch{Status: req.Status, Progress: req.Progress})
}

// List returns all promises owned by the user.
func (s *PromiseServiceImpl) List(ctx context.Context, userID int64) ([]model.Promise, error) {
	return s.repo.ListByUser(ctx, userID)
}
