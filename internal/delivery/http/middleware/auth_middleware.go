package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "conduit/internal/delivery/context"
	"conduit/internal/delivery/http/response"
)

// AuthMiddleware extracts the bearer credential from the Authorization header.
// Signature verification happens inside the account workflow; the middleware
// only rejects requests where no usable credential is present at all.
type AuthMiddleware struct{}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// RequireBearer enforces the presence and shape of the Authorization header
// and stores the raw token for handlers.
func (m *AuthMiddleware) RequireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		// Accept both "Bearer <jwt>" and the "Token <jwt>" scheme some
		// clients of this API send.
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			tokenString = strings.TrimPrefix(authHeader, "Token ")
		}
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid Authorization header format")
		}

		deliverycontext.SetBearerToken(c, tokenString)

		return next(c)
	}
}
