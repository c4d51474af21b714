// Package model defines domain entities used by services and repositories.
package model

import "time"

// TelegramUser is the profile embedded in a verified initData payload.
type TelegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`
}

// User is an account row keyed by the immutable Telegram identity.
// Display fields are refreshed on every successful authentication.
type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   *string   `json:"username"`
	FirstName  *string   `json:"first_name"`
	LastName   *string   `json:"last_name"`
	PhotoURL   *string   `json:"photo_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Promise is a time-bound commitment owned by a single user.
type Promise struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    time.Time  `json:"deadline"`
	Category    string     `json:"category"`
	IsPublic    bool       `json:"is_public"`
	Status      string     `json:"status"`
	Progress    *int       `json:"progress"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// NewPromise carries validated creation input with defaults already applied.
type NewPromise struct {
	Title       string
	Description string
	Deadline    time.Time
	Category    string
	IsPublic    bool
}

// PromisePatch enumerates the fields an update may change.
// Nil means "leave as is". Translated to a fixed parameterized statement,
// never to assembled SQL.
type PromisePatch struct {
	Status   *string
	Progress *int
}

// Completed reports whether the patch transitions the promise to "completed".
func (p PromisePatch) Completed() bool {
	return p.Status != nil && *p.Status == StatusCompleted
}

// Promise status values. Status is free-form in storage; these are the
// values the lifecycle itself produces or reacts to.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Achievement keys unlocked by the promise lifecycle.
const (
	AchievementFirstPromise  = "first_promise"
	AchievementFirstComplete = "first_complete"
)

// Activity types appended to the feed.
const (
	ActivityCreated   = "created"
	ActivityCompleted = "completed"
)

// FeedEntry is one public feed row: an activity joined with its actor and,
// when present, the referenced promise.
type FeedEntry struct {
	ID        int64
	Type      string
	CreatedAt time.Time

	UserID        int64
	UserFirstName *string
	UserLastName  *string
	UserUsername  *string
	UserPhotoURL  *string

	PromiseID       *int64
	PromiseTitle    *string
	PromiseCategory *string
}
