// Package service contains application services for authentication, promises,
// and the public feed.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/m-ovsyannikov/promisetrack/internal/auth"
	"github.com/m-ovsyannikov/promisetrack/internal/errs"
	"github.com/m-ovsyannikov/promisetrack/internal/model"
	"github.com/m-ovsyannikov/promisetrack/internal/repository"
)

// AuthService defines authentication operations.
type AuthService interface {
	// Login verifies a Telegram initData payload, upserts the profile, and
	// issues a bearer token.
	Login(ctx context.Context, initData string) (token string, user *model.User, err error)
	// Identify resolves a bearer token to the internal user.
	Identify(ctx context.Context, token string) (*model.User, error)
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	codec    *auth.Codec
	botToken string
	now      func() time.Time
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, codec *auth.Codec, botToken string) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, codec: codec, botToken: botToken, now: time.Now}
}

// Login performs the full authentication flow: verify signature, extract the
// profile, persist it, issue a token. The profile is only persisted after
// verification succeeds.
func (s *AuthServiceImpl) Login(ctx context.Context, initData string) (string, *model.User, error) {
	if initData == "" {
		return "", nil, fmt.Errorf("%w: initData is required", errs.ErrValidation)
	}

	tu, parseErr := auth.ParseInitDataUser(initData)
	if err := auth.VerifyInitData(initData, s.botToken); err != nil {
		return "", nil, err
	}
	if parseErr != nil {
		return "", nil, parseErr
	}

	u, err := s.users.Upsert(ctx, tu)
	if err != nil {
		return "", nil, err
	}
	return s.codec.Issue(u.TelegramID, s.now()), u, nil
}

// Identify decodes the token and loads the user it names.
func (s *AuthServiceImpl) Identify(ctx context.Context, token string) (*model.User, error) {
	telegramID, err := s.codec.Decode(token, s.now())
	if err != nil {
		return nil, err
	}
	return s.users.GetByTelegramID(ctx, telegramID)
}
