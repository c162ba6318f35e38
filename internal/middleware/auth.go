package middleware

import (
	"strconv"
	"strings"

	"inkwell/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

// AuthRequired is a middleware that enforces authentication for protected routes.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return unauthorized(c, "Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return unauthorized(c, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return unauthorized(c, "Invalid token claims")
	}

	// Subject claim carries the user ID per RFC 7519.
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return unauthorized(c, "Invalid token structure - missing subject")
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return unauthorized(c, "Invalid token subject")
	}

	c.Locals("userID", uint(userID))
	return c.Next()
}
