package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminKeyHeader is the request header carrying the shared admin secret.
// Header name matching is case-insensitive at the transport level.
const AdminKeyHeader = "X-Admin-Key"

// adminKeyLocal is the Fiber locals key the extracted header is stored
// under for downstream handlers and resolvers.
const adminKeyLocal = "admin_key"

// ExtractAdminKey is a Fiber middleware that lifts the admin key header
// into the request context. It never rejects: read operations are open, so
// the authorization decision belongs to each mutation, not the transport.
func ExtractAdminKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(adminKeyLocal, c.Get(AdminKeyHeader))
		return c.Next()
	}
}

// AdminKeyFromCtx returns the admin key extracted by ExtractAdminKey, or
// an empty string when none was supplied.
func AdminKeyFromCtx(c *fiber.Ctx) string {
	key, _ := c.Locals(adminKeyLocal).(string)
	return key
}
