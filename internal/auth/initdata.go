// Package auth implements Telegram WebApp initData verification and the
// bearer token codec.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	"github.com/m-ovsyannikov/promisetrack/internal/errs"
	"github.com/m-ovsyannikov/promisetrack/internal/model"
)

// webAppDataKey is the fixed HMAC key Telegram prescribes for deriving the
// per-bot secret from the bot token.
const webAppDataKey = "WebAppData"

// parseInitData splits a query-string-encoded initData blob into key/value
// pairs. Each item is split on the first '=' only; values may contain '='.
// Values are kept raw (undecoded), as the check-string is computed over them
// as received.
func parseInitData(initData string) map[string]string {
	params := make(map[string]string)
	for _, item := range strings.Split(initData, "&") {
		k, v, ok := strings.Cut(item, "=")
		if !ok {
			continue
		}
		params[k] = v
	}
	return params
}

// VerifyInitData checks the initData signature against the bot token.
// Any parse or crypto problem yields errs.ErrInvalidSignature, never a panic.
func VerifyInitData(initData, botToken string) error {
	params := parseInitData(initData)

	received, ok := params["hash"]
	if !ok || received == "" {
		return errs.ErrInvalidSignature
	}
	delete(params, "hash")

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+params[k])
	}
	checkString := strings.Join(lines, "\n")

	secret := hmac.New(sha256.New, []byte(webAppDataKey))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	candidate := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(candidate), []byte(received)) {
		return errs.ErrInvalidSignature
	}
	return nil
}

// ParseInitDataUser extracts the percent-encoded user profile from initData.
// Extraction is independent of signature verification; the caller must only
// trust the result after VerifyInitData succeeds.
func ParseInitDataUser(initData string) (*model.TelegramUser, error) {
	params := parseInitData(initData)

	raw, err := url.QueryUnescape(params["user"])
	if err != nil {
		return nil, errs.ErrInvalidSignature
	}

	var u model.TelegramUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, errs.ErrInvalidSignature
	}
	if u.ID == 0 {
		return nil, errs.ErrInvalidSignature
	}
	return &u, nil
}
