package helpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MintSessionToken signs a session token for a user with the given roles.
func MintSessionToken(t *testing.T, secret string, userID uint64, roles []string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", userID),
		"roles": roles,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign session token: %v", err)
	}
	return signed
}
