// internal/form/csrf.go
//
// Stateless CSRF tokens.
//
// Context
//   Every rendered form carries a hidden “_csrf” input.  The token is
//   an HMAC over the form ID and a render timestamp keyed by a server
//   secret, so no per-token server state is required.  On submission
//   we recompute the HMAC and compare in constant time.  A token is
//   bound to one form and expires after maxTokenAge.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// maxTokenAge bounds how long a rendered form stays submittable.
const maxTokenAge = 4 * time.Hour

var (
	keyMu   sync.RWMutex
	csrfKey []byte
)

// SetKey installs the HMAC secret.  Call once at boot, before any form
// is rendered.  An empty key falls back to the ATRIUM_CSRF_KEY
// environment variable, then to a random per-process key (tokens then
// do not survive restarts, which is acceptable for development).
func SetKey(key string) {
	if key == "" {
		key = os.Getenv("ATRIUM_CSRF_KEY")
	}
	keyMu.Lock()
	defer keyMu.Unlock()
	if key != "" {
		csrfKey = []byte(key)
		return
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		zap.L().Fatal("csrf key generation failed", zap.Error(err))
	}
	csrfKey = buf
	zap.L().Warn("csrf key not configured, using ephemeral key")
}

// Token returns the hidden-field value for formID rendered at ts.
func Token(formID string, ts time.Time) string {
	return sign(formID, ts.Unix())
}

// VerifyToken checks the submitted token against the form ID and
// render timestamp.  Returns false on tamper or expiry.
func VerifyToken(formID, token string, renderTS int64) bool {
	if token == "" {
		return false
	}
	age := time.Since(time.Unix(renderTS, 0))
	if age < 0 || age > maxTokenAge {
		return false
	}
	want := sign(formID, renderTS)
	return hmac.Equal([]byte(want), []byte(token))
}

// sign computes hex(HMAC-SHA256(key, formID|ts)).
func sign(formID string, ts int64) string {
	keyMu.RLock()
	key := csrfKey
	keyMu.RUnlock()
	if key == nil {
		// SetKey was never called.  Install an ephemeral key now.
		SetKey("")
		keyMu.RLock()
		key = csrfKey
		keyMu.RUnlock()
	}
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s|%s", formID, strconv.FormatInt(ts, 10))
	return hex.EncodeToString(mac.Sum(nil))
}
