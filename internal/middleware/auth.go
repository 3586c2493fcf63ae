package middleware

import (
	"strings"

	"github.com/Pranavipulluri/break-even/internal/auth"
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
}

func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Required authentication
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"UNAUTHORIZED", "Authorization token is missing",
			))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"UNAUTHORIZED", "Invalid token format",
			))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
					"TOKEN_EXPIRED", "Token has expired",
				))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"INVALID_TOKEN", "Token is not valid",
			))
		}

		customerID, err := uuid.Parse(claims.Sub)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
				"INVALID_TOKEN", "Token is not valid",
			))
		}
		c.Locals("customerID", customerID)
		if claims.BusinessID != "" {
			if businessID, err := uuid.Parse(claims.BusinessID); err == nil {
				c.Locals("businessID", businessID)
			}
		}

		return c.Next()
	}
}

// GetCustomerID returns the authenticated customer ID, or nil for
// unauthenticated requests.
func GetCustomerID(c *fiber.Ctx) *uuid.UUID {
	v := c.Locals("customerID")
	if v == nil {
		return nil
	}
	id := v.(uuid.UUID)
	return &id
}

// GetBusinessID returns the business the token was issued for, if any.
func GetBusinessID(c *fiber.Ctx) *uuid.UUID {
	v := c.Locals("businessID")
	if v == nil {
		return nil
	}
	id := v.(uuid.UUID)
	return &id
}
