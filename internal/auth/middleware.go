package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"dbforge-admin/internal/admin"
)

// SessionMiddleware returns a Fiber middleware that validates the session
// JWT and sets the Session on the request.
func SessionMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return admin.UnauthorizedError("Missing session token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return admin.UnauthorizedError("Invalid auth header format")
		}

		claims, err := ParseAccessToken(parts[1], secret)
		if err != nil {
			return admin.UnauthorizedError("Invalid or expired session token")
		}

		c.Locals("session", &Session{
			AdminID:  claims.Subject,
			Email:    claims.Email,
			SysAdmin: claims.SysAdmin,
		})

		return c.Next()
	}
}

// RequireSysAdmin checks the authenticated admin has the sys admin flag.
func RequireSysAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := c.Locals("session").(*Session)
		if !ok || sess == nil {
			return admin.UnauthorizedError("Missing session token")
		}
		if !sess.SysAdmin {
			return admin.ForbiddenError("Sys admin access required")
		}
		return c.Next()
	}
}

// GetSession extracts the Session from a Fiber context.
func GetSession(c *fiber.Ctx) *Session {
	sess, _ := c.Locals("session").(*Session)
	return sess
}
