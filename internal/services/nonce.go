package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// NonceService issues short-lived action tokens for the resolution form.
// Tokens roll over every half lifetime; Verify accepts the current and the
// previous window, so a token stays valid between half and a full TTL.
type NonceService struct {
	Secret string
	TTL    time.Duration
}

// NewNonceService creates a NonceService. A zero ttl gets the default of
// 24 hours.
func NewNonceService(secret string, ttl time.Duration) *NonceService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &NonceService{Secret: secret, TTL: ttl}
}

func (n *NonceService) tick(at time.Time) int64 {
	half := int64(n.TTL / time.Second / 2)
	return at.Unix() / half
}

func (n *NonceService) token(tick int64, action string, poetID uint64) string {
	mac := hmac.New(sha256.New, []byte(n.Secret))
	fmt.Fprintf(mac, "%d|%s|%d", tick, action, poetID)
	return hex.EncodeToString(mac.Sum(nil))[:12]
}

// Create issues a token bound to action and poetID.
func (n *NonceService) Create(action string, poetID uint64) string {
	return n.token(n.tick(time.Now()), action, poetID)
}

// Verify checks a token against the current and previous windows.
func (n *NonceService) Verify(token, action string, poetID uint64) bool {
	tick := n.tick(time.Now())
	for _, t := range []int64{tick, tick - 1} {
		if hmac.Equal([]byte(token), []byte(n.token(t, action, poetID))) {
			return true
		}
	}
	return false
}
