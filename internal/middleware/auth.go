package middleware

import (
	"github.com/gofiber/fiber/v2"

	"maple-blog/internal/service/auth"
)

const (
	AuthCookie      = "auth_token"
	AdminContextKey = "admin"
)

// OptionalAdmin stores the admin claims when the request carries a valid
// session cookie and lets every request through.
func OptionalAdmin(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(AuthCookie); token != "" {
			if claims, err := authService.ValidateToken(token); err == nil {
				c.Locals(AdminContextKey, claims)
			}
		}
		return c.Next()
	}
}

// AdminRequired rejects requests without a valid admin session.
func AdminRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AuthCookie)
		if token == "" {
			return Forbidden("Unauthorized")
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			return Forbidden("Unauthorized")
		}

		c.Locals(AdminContextKey, claims)
		return c.Next()
	}
}

func GetAdmin(c *fiber.Ctx) *auth.Claims {
	claims, ok := c.Locals(AdminContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetAdmin(c) != nil
}
