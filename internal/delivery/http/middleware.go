package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func extractToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token format")
	}

	return parts[1], nil
}

// RequireHR пропускает только токены с ролью hr или root.
// Без JWT_SECRET проверка отключена.
func (s *Server) RequireHR(c *fiber.Ctx) error {
	if s.JWTSecret == "" {
		return c.Next()
	}

	token, err := extractToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(APIResponse{Error: err.Error()})
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(APIResponse{Error: "Invalid or expired token"})
	}

	role, _ := claims["role"].(string)
	if role != "hr" && role != "root" {
		return c.Status(fiber.StatusForbidden).JSON(APIResponse{Error: "HR access required"})
	}

	c.Locals("user_id", claims["user_id"])
	c.Locals("role", role)
	return c.Next()
}
