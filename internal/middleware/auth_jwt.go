package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuth is the identity-provider contract: a valid HS256 bearer token yields
// an authenticated user id in c.Locals("user_id"). Everything downstream
// trusts that value as-is.
func JWTAuth(secret string) fiber.Handler {
	type authClaims struct {
		UID string `json:"uid,omitempty"`
		jwt.RegisteredClaims
	}

	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		tokenStr := strings.TrimSpace(auth[7:])
		var claims authClaims

		token, err := jwt.ParseWithClaims(
			tokenStr,
			&claims,
			func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, fiber.ErrUnauthorized
				}
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		uid := claims.UID
		if uid == "" {
			uid = claims.Subject
		}
		if uid == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing uid/sub")
		}

		c.Locals("user_id", uid)
		return c.Next()
	}
}
