package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"paperhub/internal/auth"
)

const (
	// AuthCookieName is the cookie carrying the session token for browser clients.
	AuthCookieName = "auth_token"
	// UserIDLocalKey is the key under which the authenticated user ID is stored in context locals.
	UserIDLocalKey = "user_id"
	// UserRoleLocalKey is the key under which the authenticated user role is stored in context locals.
	UserRoleLocalKey = "user_role"
)

// Authenticate guards a route group. It accepts the token from the
// Authorization: Bearer header or the auth_token cookie, verifies it, and
// stores the user ID and role in context locals. Requests without a valid
// token are rejected before any handler runs.
func Authenticate(secret []byte, onReject fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			token = c.Cookies(AuthCookieName)
		}
		if token == "" {
			return onReject(c)
		}

		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			return onReject(c)
		}

		c.Locals(UserIDLocalKey, claims.UserID)
		c.Locals(UserRoleLocalKey, claims.Role)

		return c.Next()
	}
}

// UserIDFromCtx extracts the authenticated user ID set by Authenticate.
func UserIDFromCtx(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDLocalKey).(string); ok {
		return v
	}
	return ""
}
