package middleware

import (
	"regexp"
	"strings"

	"go-catalog-api/pkg/jwt"
	"go-catalog-api/pkg/upload"

	"github.com/gofiber/fiber/v2"
)

// PublicRoute is one entry of the auth-exemption table: a set of methods
// and a path pattern that may be called without a token.
type PublicRoute struct {
	Methods []string
	Path    *regexp.Regexp
}

func (r PublicRoute) matches(method, path string) bool {
	for _, m := range r.Methods {
		if m == method {
			return r.Path.MatchString(path)
		}
	}
	return false
}

// PublicRoutes is the declarative allow-list defining the system's public
// surface: catalog reads, the static upload tree, and login/register.
// Everything else requires authentication.
func PublicRoutes(apiPrefix string) []PublicRoute {
	read := []string{fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions}
	quoted := regexp.QuoteMeta(apiPrefix)

	return []PublicRoute{
		{Methods: read, Path: regexp.MustCompile(`^` + regexp.QuoteMeta(upload.PublicPath) + `(/.*)?$`)},
		{Methods: read, Path: regexp.MustCompile(`^` + quoted + `/products(/.*)?$`)},
		{Methods: read, Path: regexp.MustCompile(`^` + quoted + `/categories(/.*)?$`)},
		{Methods: []string{fiber.MethodPost}, Path: regexp.MustCompile(`^` + quoted + `/users/login$`)},
		{Methods: []string{fiber.MethodPost}, Path: regexp.MustCompile(`^` + quoted + `/users/register$`)},
	}
}

// AuthGate rejects unauthenticated requests on every route not in the
// public table. Valid tokens put the caller's identity into the request
// locals for downstream handlers.
func AuthGate(secret []byte, public []PublicRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, route := range public {
			if route.matches(c.Method(), c.Path()) {
				return c.Next()
			}
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(secret, parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", claims.Email)
		c.Locals("user_is_admin", claims.IsAdmin)

		return c.Next()
	}
}
