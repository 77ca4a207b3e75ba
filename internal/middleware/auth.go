package middleware

import (
	"strings"

	"github.com/NoteLegend/CodeKeep/internal/services"
	"github.com/NoteLegend/CodeKeep/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// Auth verifies the bearer token and stores the authenticated identity on
// the context. Failures all answer 401 with the standard envelope so the
// client treats any of them as an expired session.
func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.JSON(401, dto.Error("Not authorized to access this route"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			_ = c.JSON(401, dto.Error("Not authorized to access this route"))
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			_ = c.JSON(401, dto.Error("Not authorized to access this route"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)

		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}
