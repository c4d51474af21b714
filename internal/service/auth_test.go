package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m-ovsyannikov/promisetrack/internal/auth"
	"github.com/m-ovsyannikov/promisetrack/internal/errs"
	"github.com/m-ovsyannikov/promisetrack/internal/model"
	"github.com/m-ovsyannikov/promisetrack/internal/repository"
)

type fakeUsers struct {
	byTelegramID map[int64]*model.User
	nextID       int64

	upsertErr error
	upserts   int
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Upsert(_ context.Context, tu *model.TelegramUser) (*model.User, error) {
	f.upserts++
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if f.byTelegramID == nil {
		f.byTelegramID = map[int64]*model.User{}
	}
	u, ok := f.byTelegramID[tu.ID]
	if !ok {
		f.nextID++
		u = &model.User{ID: f.nextID, TelegramID: tu.ID, CreatedAt: time.Now()}
		f.byTelegramID[tu.ID] = u
	}
	if tu.Username != "" {
		name := tu.Username
		u.Username = &name
	}
	if tu.FirstName != "" {
		name := tu.FirstName
		u.FirstName = &name
	}
	u.UpdatedAt = time.Now()
	cpy := *u
	return &cpy, nil
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	u, ok := f.byTelegramID[telegramID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *u
	return &cpy, nil
}

const testBotToken = "123456:TEST-bot-token"

func newAuthService(users *fakeUsers) *AuthServiceImpl {
	codec := auth.NewCodec([]byte(testBotToken), 30*24*time.Hour)
	return NewAuthService(users, codec, testBotToken)
}

func validInitData(t *testing.T, telegramID int64) string {
	t.Helper()
	// Build a payload the same way the platform does: signed check-string
	// over sorted key=value lines.
	return signInitData(map[string]string{
		"auth_date": "1727000000",
		"user":      url.QueryEscape(`{"id":` + itoa(telegramID) + `,"first_name":"Ann","username":"ann"}`),
	}, testBotToken)
}

func TestAuthService_Login_OK(t *testing.T) {
	users := &fakeUsers{}
	s := newAuthService(users)

	token, u, err := s.Login(context.Background(), validInitData(t, 42))
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, int64(42), u.TelegramID)
	require.Equal(t, 1, users.upserts)

	// The issued token identifies the same user.
	got, err := s.Identify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestAuthService_Login_EmptyInitData(t *testing.T) {
	s := newAuthService(&fakeUsers{})
	_, _, err := s.Login(context.Background(), "")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestAuthService_Login_BadSignatureDoesNotPersist(t *testing.T) {
	users := &fakeUsers{}
	s := newAuthService(users)

	initData := validInitData(t, 42) + "tampered"
	_, _, err := s.Login(context.Background(), initData)
	require.ErrorIs(t, err, errs.ErrInvalidSignature)
	require.Zero(t, users.upserts)
}

func TestAuthService_Login_ValidSignatureWithoutUserField(t *testing.T) {
	users := &fakeUsers{}
	s := newAuthService(users)

	initData := signInitData(map[string]string{"auth_date": "1"}, testBotToken)
	_, _, err := s.Login(context.Background(), initData)
	require.Error(t, err)
	require.Zero(t, users.upserts)
}

func TestAuthService_Login_UpsertError(t *testing.T) {
	boom := errors.New("db down")
	s := newAuthService(&fakeUsers{upsertErr: boom})
	_, _, err := s.Login(context.Background(), validInitData(t, 42))
	require.ErrorIs(t, err, boom)
}

func TestAuthService_Identify_UnknownUser(t *testing.T) {
	users := &fakeUsers{}
	s := newAuthService(users)

	codec := auth.NewCodec([]byte(testBotToken), time.Hour)
	token := codec.Issue(99, time.Now())

	_, err := s.Identify(context.Background(), token)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAuthService_Identify_BadToken(t *testing.T) {
	s := newAuthService(&fakeUsers{})
	_, err := s.Identify(context.Background(), "not-a-token")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}
