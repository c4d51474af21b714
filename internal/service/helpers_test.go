package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// signInitData assembles an initData blob with a valid hash for params,
// mirroring the platform's signing scheme.
func signInitData(params map[string]string, botToken string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	items := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		lines = append(lines, k+"="+params[k])
		items = append(items, k+"="+params[k])
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))

	items = append(items, "hash="+hex.EncodeToString(mac.Sum(nil)))
	return strings.Join(items, "&")
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
