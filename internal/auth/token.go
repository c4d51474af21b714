package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m-ovsyannikov/promisetrack/internal/errs"
)

// Codec issues and validates bearer tokens of the form
//
//	"{telegram_id}:{expiry_unix}:{hex hmac-sha256}"
//
// The format predates this service and is kept for client compatibility;
// unlike the original issuer, Decode re-verifies the signature and rejects
// expired tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec constructs a token codec signing with the bot token.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl}
}

// Issue creates a signed token for the given Telegram identity.
func (c *Codec) Issue(telegramID int64, now time.Time) string {
	payload := fmt.Sprintf("%d:%d", telegramID, now.Add(c.ttl).Unix())
	return payload + ":" + c.sign(payload)
}

// Decode validates a token and returns the embedded Telegram identity.
// Malformed, tampered, or expired tokens yield errs.ErrUnauthorized.
func (c *Codec) Decode(token string, now time.Time) (int64, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return 0, errs.ErrUnauthorized
	}

	payload := parts[0] + ":" + parts[1]
	if !hmac.Equal([]byte(c.sign(payload)), []byte(parts[2])) {
		return 0, errs.ErrUnauthorized
	}

	exp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || now.Unix() >= exp {
		return 0, errs.ErrUnauthorized
	}

	telegramID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, errs.ErrUnauthorized
	}
	return telegramID, nil
}

func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
