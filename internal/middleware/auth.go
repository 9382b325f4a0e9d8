package middleware

import (
	"fmt"
	"strconv"

	"github.com/footpoets/claimsdb/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "poets_session"

// AuthAdmin validates that the request has admin role authorization
func AuthAdmin(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, secret, []string{"admin"}, "claims.authorization.admin")
	}
}

// AuthUser validates that the request has user role authorization
func AuthUser(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, secret, []string{"user", "admin"}, "claims.authorization.user")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, secret string, roles []string, errorType string) error {
	// Get session cookie
	session := c.Cookies(SessionCookie)
	if session == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Session cookie %q not found", SessionCookie),
			Type:    errorType,
		}
	}

	// Validate session token
	claims, err := validateSession(session, secret, roles)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	// Set user id in context
	sub, err := claims.GetSubject()
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Invalid session: missing subject",
			Type:    errorType,
		}
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Invalid session: malformed subject",
			Type:    errorType,
		}
	}
	c.Locals("user_id", userID)

	return c.Next()
}

type sessionClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// validateSession parses and verifies the session token and checks that it
// carries at least one of the required roles.
func validateSession(token, secret string, roles []string) (*sessionClaims, error) {
	claims := &sessionClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	for _, required := range roles {
		for _, role := range claims.Roles {
			if role == required {
				return claims, nil
			}
		}
	}
	return nil, fmt.Errorf("missing required role")
}
