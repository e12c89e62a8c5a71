package admin

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"dbforge-admin/internal/metadata"
)

// CorsMiddleware applies the admin-managed CORS rules. The longest
// matching enabled path prefix wins; requests with no matching rule pass
// through untouched and the browser enforces same-origin.
func CorsMiddleware(reg *metadata.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin == "" {
			return c.Next()
		}

		rule := matchCorsRule(reg.CorsRules(), c.Path(), origin)
		if rule == nil {
			return c.Next()
		}

		c.Set("Access-Control-Allow-Origin", origin)
		c.Set("Vary", "Origin")
		if len(rule.Methods) > 0 {
			c.Set("Access-Control-Allow-Methods", strings.Join(rule.Methods, ", "))
		}
		if len(rule.Headers) > 0 {
			c.Set("Access-Control-Allow-Headers", strings.Join(rule.Headers, ", "))
		}
		if rule.SupportsCredentials {
			c.Set("Access-Control-Allow-Credentials", "true")
		}
		if rule.MaxAge > 0 {
			c.Set("Access-Control-Max-Age", strconv.Itoa(rule.MaxAge))
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func matchCorsRule(rules []*metadata.CorsRule, path, origin string) *metadata.CorsRule {
	var best *metadata.CorsRule
	for _, rule := range rules {
		if !rule.AllowsOrigin(origin) {
			continue
		}
		if !strings.HasPrefix(path, rule.Path) {
			continue
		}
		if best == nil || len(rule.Path) > len(best.Path) {
			best = rule
		}
	}
	return best
}
